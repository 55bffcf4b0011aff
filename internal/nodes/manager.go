// Package nodes 解析 memcached 节点拓扑，划分主节点与 failover 节点，
// 维护地址与节点 id 的双向映射以及节点可用状态。
package nodes

import (
	"msm/internal/errs"
	"msm/internal/sessionid"
	"msm/pkg/glog"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Manager 节点拓扑管理器
// CreateFor 返回后除可用状态外全部只读，可以在多个 goroutine 间共享
type Manager struct {
	nodes           []Node
	primaryNodeIds  *NodeIdList
	failoverNodeIds []string
	address2Id      map[Address]string
	id2Address      map[string]Address

	encodeNodeIdInSessionId bool

	availability *availabilityStore
	callback     ClientCallback
	strategy     RouteStrategy
	format       sessionid.Format
}

// CreateFor 根据节点拓扑字符串与 failover 节点 id 创建管理器
// 任何一步校验失败都返回 errs.ErrIllegalArgument，不会产生部分构造的实例
func CreateFor(memcachedNodes, failoverNodes string, callback ClientCallback, opts ...Option) (*Manager, error) {
	options := loadOptions(opts...)

	nodes, err := ParseNodes(memcachedNodes)
	if err != nil {
		return nil, err
	}
	encode := nodes[0].Id != ""

	failoverIds := splitList(failoverNodes)
	if len(failoverIds) > 0 && !encode {
		return nil, errs.ErrFailoverWithoutNodeIds(failoverNodes)
	}

	known := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		known[node.Id] = struct{}{}
	}
	failoverSet := make(map[string]struct{}, len(failoverIds))
	for _, id := range failoverIds {
		if _, ok := known[id]; !ok {
			return nil, errs.ErrUnknownFailoverNodeId(id)
		}
		if _, ok := failoverSet[id]; ok {
			return nil, errs.ErrDuplicateFailoverNodeId(id)
		}
		failoverSet[id] = struct{}{}
	}

	var primaryIds, failoverOrdered, allIds []string
	address2Id := make(map[Address]string, len(nodes))
	id2Address := make(map[string]Address, len(nodes))
	for _, node := range nodes {
		if !encode {
			continue
		}
		allIds = append(allIds, node.Id)
		address2Id[node.Address] = node.Id
		id2Address[node.Id] = node.Address
		if _, ok := failoverSet[node.Id]; ok {
			failoverOrdered = append(failoverOrdered, node.Id)
		} else {
			primaryIds = append(primaryIds, node.Id)
		}
	}
	if encode && len(primaryIds) == 0 {
		return nil, errs.ErrNoPrimaryNodes()
	}
	if failoverOrdered == nil {
		failoverOrdered = []string{}
	}

	m := &Manager{
		nodes:                   nodes,
		primaryNodeIds:          NewNodeIdList(primaryIds...),
		failoverNodeIds:         failoverOrdered,
		address2Id:              address2Id,
		id2Address:              id2Address,
		encodeNodeIdInSessionId: encode,
		availability:            newAvailabilityStore(allIds),
		callback:                callback,
		strategy:                options.strategy,
	}
	glog.Info("memcached节点初始化完成",
		zap.Int("count", len(nodes)),
		zap.Strings("primary", primaryIds),
		zap.Strings("failover", failoverOrdered),
		zap.Bool("encodeNodeId", encode))
	return m, nil
}

// GetCountNodes 节点总数（主节点 + failover 节点）
func (m *Manager) GetCountNodes() int {
	return len(m.nodes)
}

func (m *Manager) GetPrimaryNodeIds() *NodeIdList {
	return m.primaryNodeIds
}

func (m *Manager) GetFailoverNodeIds() []string {
	return slices.Clone(m.failoverNodeIds)
}

// IsEncodeNodeIdInSessionId 拓扑中使用了 id:host:port 写法时为 true
func (m *Manager) IsEncodeNodeIdInSessionId() bool {
	return m.encodeNodeIdInSessionId
}

// GetNodeId 返回地址对应的节点 id，未知地址返回空串
func (m *Manager) GetNodeId(addr *Address) (string, error) {
	if addr == nil {
		return "", errs.ErrAddressIsNil
	}
	return m.address2Id[*addr], nil
}

// GetAddress 返回节点 id 对应的地址
func (m *Manager) GetAddress(nodeId string) (Address, bool) {
	addr, ok := m.id2Address[nodeId]
	return addr, ok
}

// GetNextPrimaryNodeId 主节点列表中 nodeId 的下一个节点，只有一个主节点时返回空串
func (m *Manager) GetNextPrimaryNodeId(nodeId string) string {
	return m.primaryNodeIds.NextNodeId(nodeId)
}

// GetNextAvailableNodeId 从 nodeId 之后的主节点开始（回绕，不含 nodeId 自身）
// 依次查找可用节点，主节点都不可用时再按顺序查找 failover 节点
func (m *Manager) GetNextAvailableNodeId(nodeId string) string {
	if m.primaryNodeIds.Contains(nodeId) {
		for next := m.primaryNodeIds.NextNodeId(nodeId); next != "" && next != nodeId; next = m.primaryNodeIds.NextNodeId(next) {
			if m.IsNodeAvailable(next) {
				return next
			}
		}
	} else {
		for _, id := range m.primaryNodeIds.ids {
			if id != nodeId && m.IsNodeAvailable(id) {
				return id
			}
		}
	}
	for _, id := range m.failoverNodeIds {
		if id != nodeId && m.IsNodeAvailable(id) {
			return id
		}
	}
	return ""
}

// GetAllMemcachedAddresses 所有节点地址，按拓扑顺序
func (m *Manager) GetAllMemcachedAddresses() []Address {
	addresses := make([]Address, 0, len(m.nodes))
	for _, node := range m.nodes {
		addresses = append(addresses, node.Address)
	}
	return addresses
}

// GetAvailableAddresses 当前可用节点的地址，没有节点 id 的节点始终视为可用
func (m *Manager) GetAvailableAddresses() []Address {
	addresses := make([]Address, 0, len(m.nodes))
	for _, node := range m.nodes {
		if node.Id == "" || m.IsNodeAvailable(node.Id) {
			addresses = append(addresses, node.Address)
		}
	}
	return addresses
}

// GetNodes 所有节点，按拓扑顺序
func (m *Manager) GetNodes() []Node {
	return slices.Clone(m.nodes)
}

func (m *Manager) GetSessionIdFormat() sessionid.Format {
	return m.format
}

func (m *Manager) Callback() ClientCallback {
	return m.callback
}

// CreateSessionId 不需要编码节点 id 时原样返回，否则追加为该 session 选中的主节点 id
func (m *Manager) CreateSessionId(sessionId string) string {
	if !m.encodeNodeIdInSessionId {
		return sessionId
	}
	return m.format.CreateSessionId(sessionId, m.selectNodeId())
}

// selectNodeId 在可用主节点中按路由策略选择，全部不可用时退到第一个可用的 failover 节点
func (m *Manager) selectNodeId() string {
	candidates := make([]string, 0, m.primaryNodeIds.Count())
	for _, id := range m.primaryNodeIds.ids {
		if m.IsNodeAvailable(id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) > 0 {
		return m.strategy(candidates)
	}
	for _, id := range m.failoverNodeIds {
		if m.IsNodeAvailable(id) {
			return id
		}
	}
	glog.Warn("没有可用的memcached节点，使用第一个主节点", zap.String("nodeId", m.primaryNodeIds.Get(0)))
	return m.primaryNodeIds.Get(0)
}

// GetNodeIdForSessionId 提取 session id 中编码的节点 id
func (m *Manager) GetNodeIdForSessionId(sessionId string) (string, bool) {
	return m.format.ExtractNodeId(sessionId)
}

// IsValidForMemcached 编码节点 id 时要求 session id 中的节点 id 属于当前拓扑
func (m *Manager) IsValidForMemcached(sessionId string) bool {
	if !m.encodeNodeIdInSessionId {
		return true
	}
	nodeId, ok := m.format.ExtractNodeId(sessionId)
	if !ok {
		return false
	}
	_, known := m.id2Address[nodeId]
	return known
}

// NewSessionIdIfNodeUnavailable session 所在节点不可用且存在其他可用节点时，返回指向新节点的 session id
func (m *Manager) NewSessionIdIfNodeUnavailable(sessionId string) (string, bool) {
	if !m.encodeNodeIdInSessionId {
		return "", false
	}
	nodeId, ok := m.format.ExtractNodeId(sessionId)
	if !ok || m.NodeAvailability(nodeId) != Unavailable {
		return "", false
	}
	next := m.GetNextAvailableNodeId(nodeId)
	if next == "" {
		return "", false
	}
	return m.format.CreateNewSessionId(sessionId, next), true
}

// NodeAvailability 返回节点状态，未知节点返回 AvailabilityUnknown
func (m *Manager) NodeAvailability(nodeId string) Availability {
	return m.availability.get(nodeId)
}

// IsNodeAvailable 未知节点返回 false
func (m *Manager) IsNodeAvailable(nodeId string) bool {
	return m.availability.get(nodeId) == Available
}

// SetNodeAvailable 记录节点可用状态，未知节点返回错误
func (m *Manager) SetNodeAvailable(nodeId string, available bool) error {
	if nodeId == "" {
		return errs.ErrNodeIdEmpty
	}
	if _, ok := m.id2Address[nodeId]; !ok {
		return errs.ErrUnknownNodeId(nodeId)
	}
	previous := m.availability.set(nodeId, available)
	if previous == Available && !available {
		glog.Warn("memcached节点不可用", zap.String("nodeId", nodeId))
	} else if previous == Unavailable && available {
		glog.Info("memcached节点恢复可用", zap.String("nodeId", nodeId))
	}
	return nil
}

// SetNodeAvailableForSessionId 按 session id 中编码的节点 id 记录可用状态，返回该节点 id
func (m *Manager) SetNodeAvailableForSessionId(sessionId string, available bool) (string, error) {
	nodeId, ok := m.format.ExtractNodeId(sessionId)
	if !ok {
		return "", errs.ErrSessionIdWithoutNodeId(sessionId)
	}
	if err := m.SetNodeAvailable(nodeId, available); err != nil {
		return "", err
	}
	return nodeId, nil
}
