package serializer

import "gopkg.in/yaml.v3"

type yamlCodec struct {
}

func (p *yamlCodec) Unmarshal(data []byte, msg interface{}) error {
	if data == nil || msg == nil {
		return ErrYamlUnPack
	}
	return yaml.Unmarshal(data, msg)
}

func (p *yamlCodec) Marshal(msg interface{}) ([]byte, error) {
	if msg == nil {
		return nil, ErrYamlPack
	}
	return yaml.Marshal(msg)
}
