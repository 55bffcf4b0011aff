// Package sessionid 负责在 session id 中编码 / 解码 memcached 节点 id。
//
// 格式: <base>-<nodeId>[.<jvmRoute>]
// 分隔符 '-' 与路由分隔符 '.' 属于对外协议，已经签发的 session id 依赖它们，不能修改。
package sessionid

import (
	"regexp"
	"strings"
)

const (
	// NodeIdDelimiter 节点 id 分隔符
	NodeIdDelimiter = '-'
	// JvmRouteDelimiter 路由后缀分隔符
	JvmRouteDelimiter = '.'
)

var validPattern = regexp.MustCompile(`^[^-.]+-[^.]+(\.[^.]+)?$`)

// Format 无状态的 session id 编解码器，零值即可直接使用
type Format struct{}

// CreateSessionId 在 session id 中加入节点 id，存在路由后缀时插在后缀之前
// nodeId 为空时原样返回
func (Format) CreateSessionId(sessionId, nodeId string) string {
	if nodeId == "" {
		return sessionId
	}
	if idx := strings.IndexByte(sessionId, JvmRouteDelimiter); idx >= 0 {
		return sessionId[:idx] + string(NodeIdDelimiter) + nodeId + sessionId[idx:]
	}
	return sessionId + string(NodeIdDelimiter) + nodeId
}

// CreateNewSessionId 把 session id 中的节点 id 替换为 newNodeId，没有节点 id 时追加
func (f Format) CreateNewSessionId(sessionId, newNodeId string) string {
	base, _, _ := f.Decode(sessionId)
	return f.CreateSessionId(base, newNodeId)
}

// ExtractNodeId 提取 session id 中的节点 id
func (Format) ExtractNodeId(sessionId string) (string, bool) {
	idxDash := strings.IndexByte(sessionId, NodeIdDelimiter)
	if idxDash < 0 {
		return "", false
	}
	idxDot := strings.IndexByte(sessionId, JvmRouteDelimiter)
	switch {
	case idxDot < 0:
		return sessionId[idxDash+1:], true
	case idxDot < idxDash:
		// '-' 属于路由后缀
		return "", false
	default:
		return sessionId[idxDash+1 : idxDot], true
	}
}

// Decode 拆分出原始 session id 与节点 id，是 CreateSessionId 的逆操作
func (f Format) Decode(sessionId string) (base, nodeId string, ok bool) {
	nodeId, ok = f.ExtractNodeId(sessionId)
	if !ok {
		return sessionId, "", false
	}
	idxDash := strings.IndexByte(sessionId, NodeIdDelimiter)
	return sessionId[:idxDash] + sessionId[idxDash+1+len(nodeId):], nodeId, true
}

// ExtractJvmRoute 提取路由后缀（不含 '.'）
func (Format) ExtractJvmRoute(sessionId string) (string, bool) {
	idx := strings.IndexByte(sessionId, JvmRouteDelimiter)
	if idx < 0 {
		return "", false
	}
	return sessionId[idx+1:], true
}

// StripJvmRoute 去掉路由后缀
func (Format) StripJvmRoute(sessionId string) string {
	if idx := strings.IndexByte(sessionId, JvmRouteDelimiter); idx >= 0 {
		return sessionId[:idx]
	}
	return sessionId
}

// ChangeJvmRoute 替换路由后缀，newJvmRoute 为空时去掉后缀
func (f Format) ChangeJvmRoute(sessionId, newJvmRoute string) string {
	stripped := f.StripJvmRoute(sessionId)
	if newJvmRoute == "" {
		return stripped
	}
	return stripped + string(JvmRouteDelimiter) + newJvmRoute
}

// IsValid 检查 session id 是否带有节点 id
func (Format) IsValid(sessionId string) bool {
	return validPattern.MatchString(sessionId)
}
