package nodes

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"msm/internal/errs"

	"github.com/duke-git/lancet/v2/strutil"
)

var nodeIdPattern = regexp.MustCompile(`^\w+$`)

// form 一个拓扑字符串中所有节点必须使用同一种写法
type form int

const (
	formImplicit form = 1 // host:port[/context]
	formExplicit form = 2 // id:host:port
)

// splitList 按逗号和空白拆分，忽略空片段
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ParseNodes 解析 memcached 节点拓扑字符串
// 先根据第一个节点决定写法，再校验其余节点与之一致，遇到第一个不一致的节点即返回错误
func ParseNodes(memcachedNodes string) ([]Node, error) {
	if strutil.IsBlank(memcachedNodes) {
		return nil, errs.ErrMemcachedNodesEmpty()
	}
	specs := splitList(memcachedNodes)
	if len(specs) == 0 {
		return nil, errs.ErrMemcachedNodesEmpty()
	}

	mode := form(strings.Count(specs[0], ":"))
	if mode != formImplicit && mode != formExplicit {
		return nil, errs.ErrInvalidNodeSpec(specs[0])
	}

	result := make([]Node, 0, len(specs))
	ids := make(map[string]struct{}, len(specs))
	addresses := make(map[Address]struct{}, len(specs))
	for _, spec := range specs {
		switch form(strings.Count(spec, ":")) {
		case mode:
		case formImplicit, formExplicit:
			return nil, errs.ErrMixedNodeIdForms(spec)
		default:
			return nil, errs.ErrInvalidNodeSpec(spec)
		}
		node, err := parseNode(spec, mode)
		if err != nil {
			return nil, err
		}
		if node.Id != "" {
			if _, ok := ids[node.Id]; ok {
				return nil, errs.ErrDuplicateNodeId(node.Id)
			}
			ids[node.Id] = struct{}{}
		}
		if _, ok := addresses[node.Address]; ok {
			return nil, errs.ErrDuplicateAddress(node.Address.String())
		}
		addresses[node.Address] = struct{}{}
		result = append(result, node)
	}
	return result, nil
}

func parseNode(spec string, mode form) (Node, error) {
	parts := strings.Split(spec, ":")
	var node Node
	if mode == formExplicit {
		node.Id, parts = parts[0], parts[1:]
		if !nodeIdPattern.MatchString(node.Id) {
			return Node{}, errs.ErrInvalidNodeId(spec, node.Id)
		}
	}
	host, portPart := parts[0], parts[1]
	// "/context" 后缀不参与节点标识
	if idx := strings.IndexByte(portPart, '/'); idx >= 0 {
		portPart = portPart[:idx]
	}
	if host == "" || strings.ContainsRune(host, '/') {
		return Node{}, errs.ErrInvalidNodeSpec(spec)
	}
	port, err := strconv.Atoi(portPart)
	if err != nil {
		return Node{}, errs.ErrInvalidPort(spec, err)
	}
	if port <= 0 || port > 65535 {
		return Node{}, errs.ErrInvalidPort(spec, nil)
	}
	node.Address = Address{Host: host, Port: port}
	return node, nil
}
