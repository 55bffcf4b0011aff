package serializer

import "github.com/vmihailenco/msgpack/v5"

type msgPackCodec struct {
}

func (p *msgPackCodec) Unmarshal(data []byte, msg interface{}) error {
	if data == nil || msg == nil {
		return ErrMsgPackUnPack
	}
	return msgpack.Unmarshal(data, msg)
}

func (p *msgPackCodec) Marshal(msg interface{}) ([]byte, error) {
	if msg == nil {
		return nil, ErrMsgPackPack
	}
	return msgpack.Marshal(msg)
}
