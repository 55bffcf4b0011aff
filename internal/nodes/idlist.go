package nodes

import (
	"strings"

	"golang.org/x/exp/slices"
)

// NodeIdList 有序且不重复的节点 id 列表，顺序即 failover 的优先级
// 构造后只读，可以在多个 goroutine 间共享
type NodeIdList struct {
	ids   []string
	index map[string]int
}

// NewNodeIdList 按给定顺序创建列表，重复的 id 保留第一次出现的位置
func NewNodeIdList(ids ...string) *NodeIdList {
	l := &NodeIdList{
		ids:   make([]string, 0, len(ids)),
		index: make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if _, ok := l.index[id]; ok {
			continue
		}
		l.index[id] = len(l.ids)
		l.ids = append(l.ids, id)
	}
	return l
}

func (l *NodeIdList) Count() int {
	return len(l.ids)
}

func (l *NodeIdList) Contains(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Get 返回第 i 个 id，越界返回空串
func (l *NodeIdList) Get(i int) string {
	if i < 0 || i >= len(l.ids) {
		return ""
	}
	return l.ids[i]
}

// Ids 返回 id 列表的副本
func (l *NodeIdList) Ids() []string {
	return slices.Clone(l.ids)
}

// NextNodeId 返回 id 之后的节点 id，末尾回绕到开头
// 列表少于两个元素或 id 不在列表中时返回空串
func (l *NodeIdList) NextNodeId(id string) string {
	return l.step(id, 1)
}

// PreviousNodeId 返回 id 之前的节点 id，开头回绕到末尾
func (l *NodeIdList) PreviousNodeId(id string) string {
	return l.step(id, -1)
}

func (l *NodeIdList) step(id string, delta int) string {
	n := len(l.ids)
	if n < 2 {
		return ""
	}
	i, ok := l.index[id]
	if !ok {
		return ""
	}
	return l.ids[(i+delta+n)%n]
}

// Equal 元素与顺序都相同时相等
func (l *NodeIdList) Equal(other *NodeIdList) bool {
	if l == nil || other == nil {
		return l == other
	}
	return slices.Equal(l.ids, other.ids)
}

func (l *NodeIdList) String() string {
	return "[" + strings.Join(l.ids, ", ") + "]"
}
