package serializer

import "errors"

var (
	ErrMsgPackPack   = errors.New("msgpack打包错误")
	ErrMsgPackUnPack = errors.New("msgpack解析错误")
	ErrJsonPack      = errors.New("json打包错误")
	ErrJsonUnPack    = errors.New("json解析错误")
	ErrYamlPack      = errors.New("yaml打包错误")
	ErrYamlUnPack    = errors.New("yaml解析错误")
)
