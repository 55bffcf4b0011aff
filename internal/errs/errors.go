package errs

import (
	"errors"
	"fmt"

	"msm/pkg/lib/xerror"
)

// ErrIllegalArgument 非法参数或非法配置，所有配置校验错误都可以通过 errors.Is 匹配到它
var ErrIllegalArgument = errors.New("illegal argument")

// ========== 节点配置相关错误 ==========

func ErrMemcachedNodesEmpty() error {
	return xerror.Wrap(ErrIllegalArgument, "memcached nodes must not be empty")
}

func ErrMixedNodeIdForms(spec string) error {
	return xerror.Wrapf(ErrIllegalArgument, "node '%s' does not match the form of the first node, "+
		"either all nodes use 'id:host:port' or all use 'host:port'", spec)
}

func ErrInvalidNodeSpec(spec string) error {
	return xerror.Wrapf(ErrIllegalArgument, "invalid memcached node '%s'", spec)
}

func ErrInvalidNodeId(spec, id string) error {
	return xerror.Wrapf(ErrIllegalArgument, "invalid node id '%s' in node '%s', only word characters are allowed", id, spec)
}

func ErrInvalidPort(spec string, err error) error {
	msg := fmt.Sprintf("invalid port in memcached node '%s'", spec)
	if err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, err)
	}
	return xerror.Wrap(ErrIllegalArgument, msg)
}

func ErrDuplicateNodeId(id string) error {
	return xerror.Wrapf(ErrIllegalArgument, "node id '%s' is defined more than once", id)
}

func ErrDuplicateAddress(addr string) error {
	return xerror.Wrapf(ErrIllegalArgument, "address '%s' is defined more than once", addr)
}

// ========== failover 相关错误 ==========

func ErrFailoverWithoutNodeIds(failoverNodes string) error {
	return xerror.Wrapf(ErrIllegalArgument, "failover nodes '%s' given, but memcached nodes do not define node ids", failoverNodes)
}

func ErrUnknownFailoverNodeId(id string) error {
	return xerror.Wrapf(ErrIllegalArgument, "failover node '%s' is not defined in memcached nodes", id)
}

func ErrDuplicateFailoverNodeId(id string) error {
	return xerror.Wrapf(ErrIllegalArgument, "failover node '%s' is listed more than once", id)
}

func ErrNoPrimaryNodes() error {
	return xerror.Wrap(ErrIllegalArgument, "all memcached nodes are failover nodes, at least one primary node is required")
}

// ========== 查询参数相关错误 ==========

var (
	ErrAddressIsNil = xerror.Wrap(ErrIllegalArgument, "address is nil")
	ErrNodeIdEmpty  = xerror.Wrap(ErrIllegalArgument, "node id is empty")
)

func ErrUnknownNodeId(id string) error {
	return xerror.Wrapf(ErrIllegalArgument, "unknown node id '%s'", id)
}

func ErrSessionIdWithoutNodeId(sessionId string) error {
	return xerror.Wrapf(ErrIllegalArgument, "session id '%s' carries no node id", sessionId)
}

// ========== Config 相关错误 ==========

func ErrReadConfigFileFailed(err error) error {
	return xerror.Wrap(err, "read config file failed")
}

func ErrUnmarshalConfigFailed(err error) error {
	return xerror.Wrap(err, "unmarshal config failed")
}

func ErrInvalidConfig(reason string) error {
	return xerror.Wrapf(ErrIllegalArgument, "invalid config: %s", reason)
}

func ErrConsulKeyNotFound(key string) error {
	return fmt.Errorf("consul key '%s' not found", key)
}

// ========== Serializer 相关错误 ==========

func ErrUnsupportedFormat(name string) error {
	return xerror.Wrapf(ErrIllegalArgument, "unsupported format '%s'", name)
}
