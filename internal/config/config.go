package config

import (
	"strings"
	"time"

	"msm/internal/errs"
	"msm/pkg/glog"

	"github.com/duke-git/lancet/v2/strutil"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 MSM_NODES_MEMCACHEDNODES 覆盖 nodes.memcachedNodes
const EnvPrefix = "MSM"

// Config 配置
type Config struct {
	// Nodes 节点拓扑配置
	Nodes NodesConfig `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
	// Probe 节点探活配置
	Probe ProbeConfig `json:"probe" yaml:"probe" mapstructure:"probe"`
	// Glog 配置
	Glog glog.Config `json:"glog" yaml:"glog" mapstructure:"glog"`
}

type NodesConfig struct {
	// MemcachedNodes 节点拓扑，例如 "n1:host1:11211,n2:host2:11211"
	MemcachedNodes string `json:"memcachedNodes" yaml:"memcachedNodes" mapstructure:"memcachedNodes"`
	// FailoverNodes 只用作 failover 的节点 id，例如 "n2"
	FailoverNodes string `json:"failoverNodes" yaml:"failoverNodes" mapstructure:"failoverNodes"`
	// Consul 配置了 key 时从 consul KV 读取 MemcachedNodes
	Consul ConsulConfig `json:"consul" yaml:"consul" mapstructure:"consul"`
}

type ConsulConfig struct {
	Address string `json:"address" yaml:"address" mapstructure:"address"`
	Key     string `json:"key" yaml:"key" mapstructure:"key"`
}

type ProbeConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Default 生成默认配置
func Default() *Config {
	return &Config{
		Nodes: NodesConfig{
			MemcachedNodes: "n1:127.0.0.1:11211",
			Consul: ConsulConfig{
				Address: "127.0.0.1:8500",
			},
		},
		Probe: ProbeConfig{
			Enabled:  false,
			Interval: 5 * time.Second,
			Timeout:  time.Second,
		},
		Glog: *glog.DefaultConfig(),
	}
}

// Load 读取配置文件（yaml / json 按扩展名识别），环境变量优先于文件
// path 为空时只使用默认值与环境变量
func Load(path string) (*Config, error) {
	vp := newViper()
	if path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return nil, errs.ErrReadConfigFileFailed(err)
		}
	}
	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return nil, errs.ErrUnmarshalConfigFailed(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	vp := viper.New()
	def := Default()
	// 注册默认值，AutomaticEnv 只对已知 key 生效
	vp.SetDefault("nodes.memcachedNodes", def.Nodes.MemcachedNodes)
	vp.SetDefault("nodes.failoverNodes", def.Nodes.FailoverNodes)
	vp.SetDefault("nodes.consul.address", def.Nodes.Consul.Address)
	vp.SetDefault("nodes.consul.key", def.Nodes.Consul.Key)
	vp.SetDefault("probe.enabled", def.Probe.Enabled)
	vp.SetDefault("probe.interval", def.Probe.Interval)
	vp.SetDefault("probe.timeout", def.Probe.Timeout)
	vp.SetDefault("glog.path", def.Glog.Path)
	vp.SetDefault("glog.level", def.Glog.Level)
	vp.SetDefault("glog.printConsole", def.Glog.PrintConsole)
	vp.SetDefault("glog.file.maxSize", def.Glog.File.MaxSize)
	vp.SetDefault("glog.file.maxBackups", def.Glog.File.MaxBackups)
	vp.SetDefault("glog.file.maxAge", def.Glog.File.MaxAge)
	vp.SetDefault("glog.file.compress", def.Glog.File.Compress)
	vp.SetDefault("glog.file.localTime", def.Glog.File.LocalTime)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	return vp
}

// Validate 校验配置，节点拓扑本身的语法由 nodes.ParseNodes 校验
func (c *Config) Validate() error {
	if strutil.IsBlank(c.Nodes.MemcachedNodes) && strutil.IsBlank(c.Nodes.Consul.Key) {
		return errs.ErrInvalidConfig("nodes.memcachedNodes or nodes.consul.key is required")
	}
	if c.Probe.Enabled {
		if c.Probe.Interval <= 0 {
			return errs.ErrInvalidConfig("probe.interval must be positive")
		}
		if c.Probe.Timeout <= 0 || c.Probe.Timeout > c.Probe.Interval {
			return errs.ErrInvalidConfig("probe.timeout must be positive and not exceed probe.interval")
		}
	}
	return nil
}
