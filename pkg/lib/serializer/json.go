package serializer

import (
	"encoding/json"
)

type jsonCodec struct {
}

func (p *jsonCodec) Unmarshal(data []byte, msg interface{}) error {
	if data == nil || msg == nil {
		return ErrJsonUnPack
	}
	return json.Unmarshal(data, msg)
}

func (p *jsonCodec) Marshal(msg interface{}) ([]byte, error) {
	if msg == nil {
		return nil, ErrJsonPack
	}
	return json.MarshalIndent(msg, "", "  ")
}
