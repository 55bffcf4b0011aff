package nodes

import (
	"net"
	"strconv"
)

// Address memcached 节点监听地址
type Address struct {
	Host string `json:"host" yaml:"host" msgpack:"host"`
	Port int    `json:"port" yaml:"port" msgpack:"port"`
}

// NewAddress 创建地址
func NewAddress(host string, port int) *Address {
	return &Address{Host: host, Port: port}
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Node 解析后的节点，Id 为空表示配置中没有显式的节点 id
type Node struct {
	Id      string  `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Address Address `json:"address" yaml:"address" msgpack:"address"`
}

// ClientCallback 外部 memcached 客户端的回调能力
// 管理器只保存该引用，由外围组件（例如探活器）在可用地址变化时调用
type ClientCallback interface {
	AddressesChanged(addresses []Address)
}

// ClientCallbackFunc 函数形式的 ClientCallback
type ClientCallbackFunc func(addresses []Address)

func (f ClientCallbackFunc) AddressesChanged(addresses []Address) {
	f(addresses)
}
