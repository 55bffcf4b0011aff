package config

import (
	"strings"

	"msm/internal/errs"
	"msm/pkg/glog"
	"msm/pkg/lib/xerror"

	"github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// LoadNodesFromConsul 从 consul KV 读取节点拓扑字符串
func LoadNodesFromConsul(cfg ConsulConfig) (string, error) {
	apiCfg := api.DefaultConfig()
	if cfg.Address != "" {
		apiCfg.Address = cfg.Address
	}
	client, err := api.NewClient(apiCfg)
	if err != nil {
		return "", xerror.Wrapf(err, "创建consul客户端失败 (address=%s)", cfg.Address)
	}
	pair, _, err := client.KV().Get(cfg.Key, nil)
	if err != nil {
		glog.Error("读取consul节点配置失败", zap.String("address", cfg.Address), zap.String("key", cfg.Key), zap.Error(err))
		return "", xerror.Wrapf(err, "读取consul key失败 (key=%s)", cfg.Key)
	}
	if pair == nil {
		return "", errs.ErrConsulKeyNotFound(cfg.Key)
	}
	nodes := strings.TrimSpace(string(pair.Value))
	glog.Info("从consul读取节点配置", zap.String("key", cfg.Key), zap.String("memcachedNodes", nodes))
	return nodes, nil
}

// ResolveMemcachedNodes 配置了 consul key 时以 consul 中的值为准
func (c *Config) ResolveMemcachedNodes() (string, error) {
	if c.Nodes.Consul.Key == "" {
		return c.Nodes.MemcachedNodes, nil
	}
	return LoadNodesFromConsul(c.Nodes.Consul)
}
