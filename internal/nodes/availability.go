package nodes

import (
	"github.com/duke-git/lancet/v2/maputil"
)

// Availability 节点可用状态
type Availability int

const (
	AvailabilityUnknown Availability = iota // 拓扑中不存在的节点
	Available
	Unavailable
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// availabilityStore 节点 id -> 是否可用，支持并发读写
// 与管理器其余只读状态分离，读取拓扑不需要加锁
type availabilityStore struct {
	dict *maputil.ConcurrentMap[string, bool]
}

func newAvailabilityStore(ids []string) *availabilityStore {
	s := &availabilityStore{
		dict: maputil.NewConcurrentMap[string, bool](len(ids) + 1),
	}
	for _, id := range ids {
		s.dict.Set(id, true)
	}
	return s
}

func (s *availabilityStore) get(id string) Availability {
	available, ok := s.dict.Get(id)
	switch {
	case !ok:
		return AvailabilityUnknown
	case available:
		return Available
	default:
		return Unavailable
	}
}

// set 返回设置前的状态
func (s *availabilityStore) set(id string, available bool) Availability {
	previous := s.get(id)
	s.dict.Set(id, available)
	return previous
}
