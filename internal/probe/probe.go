// Package probe 周期性探测 memcached 节点的 TCP 可达性，并把结果记录到节点管理器。
//
// 节点管理器本身不做网络 I/O，也不决定何时把节点标记为不可用，这些由本包负责。
package probe

import (
	"context"
	"net"
	"sync"
	"time"

	"msm/internal/nodes"
	"msm/pkg/glog"
	"msm/pkg/lib/timex/asynctime"
	"msm/pkg/lib/workers"

	"go.uber.org/zap"
)

// Dialer 建立到节点的连接，测试中可替换
type Dialer func(ctx context.Context, addr nodes.Address) error

// TCPDialer 默认的 TCP 探测
func TCPDialer(ctx context.Context, addr nodes.Address) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return err
	}
	return conn.Close()
}

// Prober 节点探活器
type Prober struct {
	manager  *nodes.Manager
	dial     Dialer
	interval time.Duration
	timeout  time.Duration

	mu    sync.Mutex
	timer asynctime.Timer
}

// New 创建探活器
func New(manager *nodes.Manager, opts ...Option) *Prober {
	options := loadOptions(opts...)
	return &Prober{
		manager:  manager,
		dial:     options.Dialer,
		interval: options.Interval,
		timeout:  options.Timeout,
	}
}

// ProbeOnce 并发探测所有带 id 的节点，等待本轮结束
// 返回本轮状态发生变化的节点 id
func (p *Prober) ProbeOnce(ctx context.Context) []string {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed []string
	)
	for _, node := range p.manager.GetNodes() {
		if node.Id == "" {
			continue
		}
		node := node
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if p.probe(ctx, node) {
				mu.Lock()
				changed = append(changed, node.Id)
				mu.Unlock()
			}
		}
		if err := workers.Submit(task, func(r interface{}) {
			glog.Error("节点探测异常", zap.String("nodeId", node.Id), zap.Any("panic", r))
		}); err != nil {
			glog.Error("提交探测任务失败", zap.String("nodeId", node.Id), zap.Error(err))
			wg.Done()
		}
	}
	wg.Wait()

	if len(changed) > 0 {
		if cb := p.manager.Callback(); cb != nil {
			cb.AddressesChanged(p.manager.GetAvailableAddresses())
		}
	}
	return changed
}

// probe 探测单个节点，返回可用状态是否发生变化
func (p *Prober) probe(ctx context.Context, node nodes.Node) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.dial(dialCtx, node.Address)
	available := err == nil
	if !available {
		glog.Debug("节点探测失败", zap.String("nodeId", node.Id), zap.Stringer("address", node.Address), zap.Error(err))
	}
	previous := p.manager.NodeAvailability(node.Id)
	if err = p.manager.SetNodeAvailable(node.Id, available); err != nil {
		glog.Error("记录节点状态失败", zap.String("nodeId", node.Id), zap.Error(err))
		return false
	}
	return (previous == nodes.Available) != available
}

// Start 每隔 interval 执行一轮探测，重复调用无效
func (p *Prober) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		return
	}
	p.timer = asynctime.Every(p.interval, func() {
		if ctx.Err() != nil {
			return
		}
		p.ProbeOnce(ctx)
	})
	glog.Info("节点探活已启动", zap.Duration("interval", p.interval), zap.Duration("timeout", p.timeout))
}

// Stop 停止周期探测
func (p *Prober) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer == nil {
		return
	}
	p.timer.Stop()
	p.timer = nil
	glog.Info("节点探活已停止")
}
