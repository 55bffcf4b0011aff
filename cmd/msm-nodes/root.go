package main

import (
	"fmt"
	"strings"

	"msm"
	"msm/internal/config"
	"msm/internal/errs"
	"msm/internal/nodes"
	"msm/pkg/glog"
	"msm/pkg/lib/xerror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootCmd 所有子命令的根
var rootCmd = &cobra.Command{
	Use:          "msm-nodes [command] [flags]",
	Short:        "memcached node topology tool",
	Long:         `inspect memcached node topologies and the node ids encoded in session ids`,
	SilenceUsage: true,
	Run:          rootCmdRun,
}

var (
	rootConfigPath string
	rootNodes      string
	rootFailover   string
	rootRoute      string
	rootLogLevel   string
	rootDown       []string
)

func rootCmdRun(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(probeCmd)

	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "config file (yaml or json)")
	rootCmd.PersistentFlags().StringVarP(&rootNodes, "nodes", "n", "", "memcached nodes, overrides the config, e.g. n1:host1:11211,n2:host2:11211")
	rootCmd.PersistentFlags().StringVarP(&rootFailover, "failover", "f", "", "failover node ids, overrides the config")
	rootCmd.PersistentFlags().StringVarP(&rootRoute, "route", "r", "round-robin", "primary node selection: round-robin, random or first")
	rootCmd.PersistentFlags().StringVarP(&rootLogLevel, "log-level", "", "warn", "log level")
	rootCmd.PersistentFlags().StringSliceVarP(&rootDown, "down", "d", nil, "node ids to mark unavailable before running the command")
}

func routeStrategy(name string) (nodes.RouteStrategy, error) {
	switch strings.ToLower(name) {
	case "round-robin", "roundrobin", "rr":
		return nodes.RouteRoundRobin(new(uint64)), nil
	case "random":
		return nodes.RouteRandom, nil
	case "first":
		return nodes.RouteFirst, nil
	default:
		return nil, errs.ErrInvalidConfig(fmt.Sprintf("unknown route strategy %q", name))
	}
}

// loadConfig 读取配置文件，命令行参数优先
func loadConfig() (*config.Config, error) {
	cfg, err := msm.Init(rootConfigPath)
	if err != nil {
		return nil, err
	}
	level, err := zapcore.ParseLevel(rootLogLevel)
	if err != nil {
		return nil, xerror.Wrapf(err, "invalid log level %q", rootLogLevel)
	}
	glog.SetLogLevel(level)

	if rootNodes != "" {
		cfg.Nodes.MemcachedNodes = rootNodes
		cfg.Nodes.Consul.Key = ""
	}
	if rootFailover != "" {
		cfg.Nodes.FailoverNodes = rootFailover
	}
	return cfg, nil
}

// loadManager 创建节点管理器并标记 --down 指定的节点
func loadManager() (*config.Config, *nodes.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	strategy, err := routeStrategy(rootRoute)
	if err != nil {
		return nil, nil, err
	}
	callback := nodes.ClientCallbackFunc(func(addresses []nodes.Address) {
		glog.Info("可用节点变化", zap.Stringers("addresses", addresses))
	})
	manager, err := msm.NewNodesManager(cfg, callback, nodes.WithRouteStrategy(strategy))
	if err != nil {
		return nil, nil, err
	}
	for _, nodeId := range rootDown {
		if err = manager.SetNodeAvailable(strings.TrimSpace(nodeId), false); err != nil {
			return nil, nil, err
		}
	}
	return cfg, manager, nil
}
