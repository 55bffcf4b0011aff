package nodes

import (
	"math/rand"
	"sync/atomic"
)

// RouteStrategy 路由策略函数，从候选节点 id 中选择一个作为新 session 的主节点
type RouteStrategy func(ids []string) string

// RouteRandom 随机路由策略
func RouteRandom(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[rand.Intn(len(ids))]
}

// RouteRoundRobin 轮询路由策略（需要外部维护状态）
func RouteRoundRobin(counter *uint64) RouteStrategy {
	return func(ids []string) string {
		if len(ids) == 0 {
			return ""
		}
		idx := int((atomic.AddUint64(counter, 1) - 1) % uint64(len(ids)))
		return ids[idx]
	}
}

// RouteFirst 选择第一个节点
func RouteFirst(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
