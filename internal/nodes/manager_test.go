package nodes

import (
	"errors"
	"sync"
	"testing"

	"msm/internal/errs"

	"golang.org/x/exp/slices"
)

type recordingCallback struct {
	mu    sync.Mutex
	calls [][]Address
}

func (c *recordingCallback) AddressesChanged(addresses []Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, addresses)
}

func mustCreate(t *testing.T, memcachedNodes, failoverNodes string, opts ...Option) *Manager {
	t.Helper()
	m, err := CreateFor(memcachedNodes, failoverNodes, &recordingCallback{}, opts...)
	if err != nil {
		t.Fatalf("CreateFor(%q, %q) 失败: %v", memcachedNodes, failoverNodes, err)
	}
	return m
}

func TestCreateFor_Invalid(t *testing.T) {
	cases := []struct {
		memcachedNodes, failoverNodes string
	}{
		{"", ""},
		{"  ", ""},
		// 单节点没有 id 却配置了 failover
		{"localhost:11211", "n1"},
		// failover 用尽了所有主节点
		{"n1:localhost:11211", "n1"},
		{"n1:localhost:11211,n2:localhost:11212", "n1 n2"},
		// 混用两种写法
		{"n1:localhost:11211,localhost:11212", ""},
		// failover 节点不存在
		{"n1:localhost:11211,n2:localhost:11212", "n3"},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n1,n1"},
	}
	for _, c := range cases {
		m, err := CreateFor(c.memcachedNodes, c.failoverNodes, &recordingCallback{})
		if !errors.Is(err, errs.ErrIllegalArgument) {
			t.Errorf("CreateFor(%q, %q) 应该返回 ErrIllegalArgument, 实际 %v", c.memcachedNodes, c.failoverNodes, err)
		}
		if m != nil {
			t.Errorf("CreateFor(%q, %q) 失败时不应该返回实例", c.memcachedNodes, c.failoverNodes)
		}
	}
}

func TestCountNodes(t *testing.T) {
	cases := []struct {
		memcachedNodes string
		expected       int
	}{
		{"localhost:11211", 1},
		{"localhost:11211/default", 1},
		{"n1:localhost:11211", 1},
		{"n1:localhost:11211,n2:localhost:11212", 2},
		{"n1:localhost:11211 n2:localhost:11212", 2},
	}
	for _, c := range cases {
		if count := mustCreate(t, c.memcachedNodes, "").GetCountNodes(); count != c.expected {
			t.Errorf("%q: 期望 %d 个节点, 实际 %d", c.memcachedNodes, c.expected, count)
		}
	}
}

func TestPrimaryNodes(t *testing.T) {
	cases := []struct {
		memcachedNodes, failoverNodes string
		expected                      *NodeIdList
	}{
		{"localhost:11211", "", NewNodeIdList()},
		{"n1:localhost:11211", "", NewNodeIdList("n1")},
		{"n1:localhost:11211,n2:localhost:11212", "n1", NewNodeIdList("n2")},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n1", NewNodeIdList("n2", "n3")},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n1,n2", NewNodeIdList("n3")},
	}
	for _, c := range cases {
		actual := mustCreate(t, c.memcachedNodes, c.failoverNodes).GetPrimaryNodeIds()
		if !actual.Equal(c.expected) {
			t.Errorf("%q / %q: 期望主节点 %s, 实际 %s", c.memcachedNodes, c.failoverNodes, c.expected, actual)
		}
	}
}

func TestFailoverNodes(t *testing.T) {
	cases := []struct {
		memcachedNodes, failoverNodes string
		expected                      []string
	}{
		{"localhost:11211", "", []string{}},
		{"n1:localhost:11211", "", []string{}},
		{"n1:localhost:11211,n2:localhost:11212", "n1", []string{"n1"}},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n1,n2", []string{"n1", "n2"}},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n1 n2", []string{"n1", "n2"}},
		{"n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n2,n1", []string{"n1", "n2"}},
	}
	for _, c := range cases {
		actual := mustCreate(t, c.memcachedNodes, c.failoverNodes).GetFailoverNodeIds()
		if !slices.Equal(actual, c.expected) {
			t.Errorf("%q / %q: 期望 failover 节点 %v, 实际 %v", c.memcachedNodes, c.failoverNodes, c.expected, actual)
		}
	}
}

func TestIsEncodeNodeIdInSessionId(t *testing.T) {
	cases := []struct {
		memcachedNodes, failoverNodes string
		expected                      bool
	}{
		{"localhost:11211", "", false},
		{"host1:11211 host2:11212", "", false},
		{"n1:localhost:11211", "", true},
		{"n1:localhost:11211,n2:localhost:11212", "n1", true},
	}
	for _, c := range cases {
		if actual := mustCreate(t, c.memcachedNodes, c.failoverNodes).IsEncodeNodeIdInSessionId(); actual != c.expected {
			t.Errorf("%q: 期望 %v, 实际 %v", c.memcachedNodes, c.expected, actual)
		}
	}
}

func TestGetNodeId(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211", "")
	if _, err := m.GetNodeId(nil); !errors.Is(err, errs.ErrIllegalArgument) {
		t.Errorf("nil 地址应该返回 ErrIllegalArgument, 实际 %v", err)
	}

	cases := []struct {
		memcachedNodes, failoverNodes string
		address                       *Address
		expected                      string
	}{
		{"n1:localhost:11211", "", NewAddress("localhost", 11211), "n1"},
		{"n1:localhost:11211,n2:localhost:11212", "", NewAddress("localhost", 11212), "n2"},
		{"n1:localhost:11211,n2:localhost:11212", "n1", NewAddress("localhost", 11211), "n1"},
		{"n1:localhost:11211,n2:localhost:11212", "", NewAddress("localhost", 11213), ""},
		{"localhost:11211", "", NewAddress("localhost", 11211), ""},
	}
	for _, c := range cases {
		nodeId, err := mustCreate(t, c.memcachedNodes, c.failoverNodes).GetNodeId(c.address)
		if err != nil {
			t.Fatalf("GetNodeId(%s) 失败: %v", c.address, err)
		}
		if nodeId != c.expected {
			t.Errorf("%q GetNodeId(%s): 期望 %q, 实际 %q", c.memcachedNodes, c.address, c.expected, nodeId)
		}
	}
}

func TestGetAddress_Bijection(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n3")
	for _, addr := range m.GetAllMemcachedAddresses() {
		addr := addr
		nodeId, _ := m.GetNodeId(&addr)
		back, ok := m.GetAddress(nodeId)
		if !ok || back != addr {
			t.Errorf("%s -> %s -> %s 映射不一致", addr, nodeId, back)
		}
	}
	if _, ok := m.GetAddress("n4"); ok {
		t.Error("未知节点不应该有地址")
	}
}

func TestGetNextPrimaryNodeId(t *testing.T) {
	if next := mustCreate(t, "n1:localhost:11211", "").GetNextPrimaryNodeId("n1"); next != "" {
		t.Errorf("单节点期望空串, 实际 %q", next)
	}
	if next := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "").GetNextPrimaryNodeId("n1"); next != "n2" {
		t.Errorf("期望 n2, 实际 %q", next)
	}
	if next := mustCreate(t, "n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n2").GetNextPrimaryNodeId("n3"); next != "n1" {
		t.Errorf("期望回绕到 n1, 实际 %q", next)
	}
}

func TestGetAllMemcachedAddresses(t *testing.T) {
	cases := []struct {
		memcachedNodes, failoverNodes string
		expected                      []Address
	}{
		{"n1:localhost:11211", "", []Address{{"localhost", 11211}}},
		{"n1:localhost:11211,n2:localhost:11212", "", []Address{{"localhost", 11211}, {"localhost", 11212}}},
		{"n1:localhost:11211,n2:localhost:11212", "n1", []Address{{"localhost", 11211}, {"localhost", 11212}}},
		{"localhost:11211", "", []Address{{"localhost", 11211}}},
	}
	for _, c := range cases {
		actual := mustCreate(t, c.memcachedNodes, c.failoverNodes).GetAllMemcachedAddresses()
		if !slices.Equal(actual, c.expected) {
			t.Errorf("%q / %q: 期望 %v, 实际 %v", c.memcachedNodes, c.failoverNodes, c.expected, actual)
		}
	}
}

func TestCreateSessionId(t *testing.T) {
	if actual := mustCreate(t, "n1:localhost:11211", "").CreateSessionId("foo"); actual != "foo-n1" {
		t.Errorf("期望 foo-n1, 实际 %s", actual)
	}
	if actual := mustCreate(t, "localhost:11211", "").CreateSessionId("foo"); actual != "foo" {
		t.Errorf("期望 foo, 实际 %s", actual)
	}
}

func TestCreateSessionId_RoundRobinOverAvailablePrimaries(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "n3")
	seen := map[string]int{}
	for i := 0; i < 4; i++ {
		nodeId, _ := m.GetNodeIdForSessionId(m.CreateSessionId("foo"))
		seen[nodeId]++
	}
	if seen["n1"] != 2 || seen["n2"] != 2 || seen["n3"] != 0 {
		t.Errorf("轮询分布不正确: %v", seen)
	}

	_ = m.SetNodeAvailable("n1", false)
	if actual := m.CreateSessionId("foo"); actual != "foo-n2" {
		t.Errorf("n1 不可用时期望 foo-n2, 实际 %s", actual)
	}
	_ = m.SetNodeAvailable("n2", false)
	if actual := m.CreateSessionId("foo"); actual != "foo-n3" {
		t.Errorf("主节点都不可用时期望 failover 节点 foo-n3, 实际 %s", actual)
	}
	_ = m.SetNodeAvailable("n3", false)
	if actual := m.CreateSessionId("foo"); actual != "foo-n1" {
		t.Errorf("没有可用节点时期望第一个主节点 foo-n1, 实际 %s", actual)
	}
}

func TestWithRouteStrategy(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "", WithRouteStrategy(RouteFirst))
	for i := 0; i < 3; i++ {
		if actual := m.CreateSessionId("foo"); actual != "foo-n1" {
			t.Fatalf("RouteFirst 期望 foo-n1, 实际 %s", actual)
		}
	}
	if RouteRandom(nil) != "" || RouteFirst(nil) != "" {
		t.Error("空候选列表应该返回空串")
	}
	if id := RouteRandom([]string{"n1"}); id != "n1" {
		t.Errorf("期望 n1, 实际 %s", id)
	}
}

func TestGetSessionIdFormat(t *testing.T) {
	format := mustCreate(t, "n1:localhost:11211", "").GetSessionIdFormat()
	if format.CreateSessionId("foo", "n1") != "foo-n1" {
		t.Error("session id 编码器不可用")
	}
}

func TestSetNodeAvailable(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "")
	if !m.IsNodeAvailable("n1") || !m.IsNodeAvailable("n2") {
		t.Fatal("初始状态所有节点都应该可用")
	}

	if err := m.SetNodeAvailable("n1", false); err != nil {
		t.Fatalf("SetNodeAvailable 失败: %v", err)
	}
	if m.IsNodeAvailable("n1") {
		t.Error("n1 应该不可用")
	}
	if !m.IsNodeAvailable("n2") {
		t.Error("n2 应该仍然可用")
	}
	if m.NodeAvailability("n1") != Unavailable {
		t.Errorf("期望 unavailable, 实际 %s", m.NodeAvailability("n1"))
	}

	_ = m.SetNodeAvailable("n1", true)
	if !m.IsNodeAvailable("n1") {
		t.Error("n1 应该恢复可用")
	}
}

func TestSetNodeAvailable_UnknownNode(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211", "")
	if err := m.SetNodeAvailable("n9", false); !errors.Is(err, errs.ErrIllegalArgument) {
		t.Errorf("未知节点应该返回 ErrIllegalArgument, 实际 %v", err)
	}
	if err := m.SetNodeAvailable("", false); !errors.Is(err, errs.ErrIllegalArgument) {
		t.Errorf("空节点 id 应该返回 ErrIllegalArgument, 实际 %v", err)
	}
	if m.IsNodeAvailable("n9") {
		t.Error("未知节点不应该是可用的")
	}
	if m.NodeAvailability("n9") != AvailabilityUnknown {
		t.Errorf("期望 unknown, 实际 %s", m.NodeAvailability("n9"))
	}
}

func TestGetNextAvailableNodeId(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212,n3:localhost:11213,n4:localhost:11214", "n4")
	if next := m.GetNextAvailableNodeId("n1"); next != "n2" {
		t.Errorf("期望 n2, 实际 %q", next)
	}
	_ = m.SetNodeAvailable("n2", false)
	if next := m.GetNextAvailableNodeId("n1"); next != "n3" {
		t.Errorf("期望跳过 n2 得到 n3, 实际 %q", next)
	}
	_ = m.SetNodeAvailable("n3", false)
	if next := m.GetNextAvailableNodeId("n1"); next != "n4" {
		t.Errorf("主节点都不可用时期望 failover 节点 n4, 实际 %q", next)
	}
	if next := m.GetNextAvailableNodeId("n4"); next != "n1" {
		t.Errorf("从 failover 节点出发期望 n1, 实际 %q", next)
	}
	_ = m.SetNodeAvailable("n4", false)
	if next := m.GetNextAvailableNodeId("n1"); next != "" {
		t.Errorf("没有其他可用节点时期望空串, 实际 %q", next)
	}
}

func TestNewSessionIdIfNodeUnavailable(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "")
	if _, ok := m.NewSessionIdIfNodeUnavailable("foo-n1"); ok {
		t.Error("节点可用时不应该生成新 session id")
	}
	nodeId, err := m.SetNodeAvailableForSessionId("foo-n1.jvm1", false)
	if err != nil || nodeId != "n1" {
		t.Fatalf("SetNodeAvailableForSessionId 期望 n1, 实际 (%q, %v)", nodeId, err)
	}
	newId, ok := m.NewSessionIdIfNodeUnavailable("foo-n1.jvm1")
	if !ok || newId != "foo-n2.jvm1" {
		t.Errorf("期望 foo-n2.jvm1, 实际 (%q, %v)", newId, ok)
	}
	if _, ok := m.NewSessionIdIfNodeUnavailable("foo-n9"); ok {
		t.Error("未知节点不应该生成新 session id")
	}
	if _, err := m.SetNodeAvailableForSessionId("foo", false); !errors.Is(err, errs.ErrIllegalArgument) {
		t.Errorf("没有节点 id 的 session 应该返回 ErrIllegalArgument, 实际 %v", err)
	}

	plain := mustCreate(t, "localhost:11211", "")
	if _, ok := plain.NewSessionIdIfNodeUnavailable("foo-n1"); ok {
		t.Error("不编码节点 id 时不应该生成新 session id")
	}
}

func TestIsValidForMemcached(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "")
	cases := map[string]bool{
		"foo-n1":      true,
		"foo-n2.jvm1": true,
		"foo-n3":      false,
		"foo":         false,
	}
	for sessionId, expected := range cases {
		if actual := m.IsValidForMemcached(sessionId); actual != expected {
			t.Errorf("IsValidForMemcached(%q): 期望 %v, 实际 %v", sessionId, expected, actual)
		}
	}
	if !mustCreate(t, "localhost:11211", "").IsValidForMemcached("foo") {
		t.Error("不编码节点 id 时所有 session 都应该合法")
	}
}

func TestCallbackRetainedNotInvoked(t *testing.T) {
	cb := &recordingCallback{}
	m, err := CreateFor("n1:localhost:11211,n2:localhost:11212", "", cb)
	if err != nil {
		t.Fatalf("CreateFor 失败: %v", err)
	}
	_ = m.SetNodeAvailable("n1", false)
	if m.Callback() != cb {
		t.Error("应该保存传入的回调")
	}
	if len(cb.calls) != 0 {
		t.Errorf("管理器不应该调用回调, 实际调用 %d 次", len(cb.calls))
	}
	if len(m.GetAvailableAddresses()) != 1 {
		t.Errorf("期望 1 个可用地址, 实际 %v", m.GetAvailableAddresses())
	}
}

func TestSnapshot(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212", "n2")
	_ = m.SetNodeAvailable("n1", false)
	s := m.Snapshot()
	if !s.EncodeNodeId || !slices.Equal(s.Primary, []string{"n1"}) || !slices.Equal(s.Failover, []string{"n2"}) {
		t.Fatalf("快照内容不正确: %+v", s)
	}
	if s.Nodes[0].Role != RolePrimary || s.Nodes[0].Availability != "unavailable" {
		t.Errorf("n1 快照不正确: %+v", s.Nodes[0])
	}
	if s.Nodes[1].Role != RoleFailover || s.Nodes[1].Availability != "available" {
		t.Errorf("n2 快照不正确: %+v", s.Nodes[1])
	}
}

func TestAvailability_Concurrent(t *testing.T) {
	m := mustCreate(t, "n1:localhost:11211,n2:localhost:11212,n3:localhost:11213", "")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = m.SetNodeAvailable("n1", (i+j)%2 == 0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = m.IsNodeAvailable("n1")
				_ = m.CreateSessionId("foo")
				_ = m.GetNextPrimaryNodeId("n1")
			}
		}()
	}
	wg.Wait()
	if !m.IsNodeAvailable("n2") || !m.IsNodeAvailable("n3") {
		t.Error("并发修改 n1 不应该影响其他节点")
	}
}
