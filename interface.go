package msm

import (
	"msm/internal/config"
	"msm/internal/nodes"
	"msm/internal/probe"
	"msm/pkg/glog"
)

// Init 读取配置并初始化日志，path 为空时只使用默认值与环境变量
func Init(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err = glog.InitFromConfig(&cfg.Glog); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewNodesManager 按配置创建节点管理器，配置了 consul key 时从 consul 读取拓扑
func NewNodesManager(cfg *config.Config, callback nodes.ClientCallback, opts ...nodes.Option) (*nodes.Manager, error) {
	memcachedNodes, err := cfg.ResolveMemcachedNodes()
	if err != nil {
		return nil, err
	}
	return nodes.CreateFor(memcachedNodes, cfg.Nodes.FailoverNodes, callback, opts...)
}

// NewProber 按配置创建节点探活器
func NewProber(cfg *config.Config, manager *nodes.Manager) *probe.Prober {
	return probe.New(manager,
		probe.WithInterval(cfg.Probe.Interval),
		probe.WithTimeout(cfg.Probe.Timeout))
}
