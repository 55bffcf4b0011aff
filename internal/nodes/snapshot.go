package nodes

// Snapshot 拓扑的可序列化视图
type Snapshot struct {
	EncodeNodeId bool           `json:"encodeNodeId" yaml:"encodeNodeId" msgpack:"encodeNodeId"`
	Primary      []string       `json:"primary" yaml:"primary" msgpack:"primary"`
	Failover     []string       `json:"failover" yaml:"failover" msgpack:"failover"`
	Nodes        []NodeSnapshot `json:"nodes" yaml:"nodes" msgpack:"nodes"`
}

type NodeSnapshot struct {
	Node         `yaml:",inline"`
	Role         string `json:"role" yaml:"role" msgpack:"role"`
	Availability string `json:"availability" yaml:"availability" msgpack:"availability"`
}

const (
	RolePrimary  = "primary"
	RoleFailover = "failover"
)

// Snapshot 生成当前拓扑与可用状态的快照
func (m *Manager) Snapshot() *Snapshot {
	s := &Snapshot{
		EncodeNodeId: m.encodeNodeIdInSessionId,
		Primary:      m.primaryNodeIds.Ids(),
		Failover:     m.GetFailoverNodeIds(),
		Nodes:        make([]NodeSnapshot, 0, len(m.nodes)),
	}
	for _, node := range m.nodes {
		role := RolePrimary
		if node.Id != "" && !m.primaryNodeIds.Contains(node.Id) {
			role = RoleFailover
		}
		availability := Available.String()
		if node.Id != "" {
			availability = m.NodeAvailability(node.Id).String()
		}
		s.Nodes = append(s.Nodes, NodeSnapshot{
			Node:         node,
			Role:         role,
			Availability: availability,
		})
	}
	return s
}
