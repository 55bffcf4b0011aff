package serializer

import (
	"strings"

	"msm/internal/errs"
)

// ISerializer 序列化接口
type ISerializer interface {
	Unmarshal(data []byte, msg interface{}) error
	Marshal(msg interface{}) ([]byte, error)
}

var (
	Json    ISerializer = new(jsonCodec)
	MsgPack ISerializer = new(msgPackCodec)
	Yaml    ISerializer = new(yamlCodec)
)

// ByName 按名字获取序列化器: json, msgpack, yaml
func ByName(name string) (ISerializer, error) {
	switch strings.ToLower(name) {
	case "json":
		return Json, nil
	case "msgpack":
		return MsgPack, nil
	case "yaml", "yml":
		return Yaml, nil
	default:
		return nil, errs.ErrUnsupportedFormat(name)
	}
}
