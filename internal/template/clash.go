// Package template owns the static base templates and the structural merge
// that turns rendered node fragments into complete Clash / sing-box configs.
package template

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nodepanel/subcodec/internal/model"
)

//go:embed assets/clash.yaml
var clashBase []byte

const (
	clashGroupSelect = "🚀 节点选择"
	clashGroupAuto   = "♻️ 自动选择"
	clashGroupDirect = "🎯 全球直连"
)

// MergeClash injects the rendered proxy records and their names into the
// base template and serializes the result. The template's dns block, rule
// order and mode pass through untouched. Each call re-parses the embedded
// bytes, so concurrent merges never share mutable state.
func MergeClash(proxies []model.OMap, names []string) (string, error) {
	doc, err := parseClashBase()
	if err != nil {
		return "", err
	}

	list := make([]interface{}, 0, len(proxies))
	for _, p := range proxies {
		list = append(list, p)
	}
	doc.Set("proxies", list)

	groups, _ := doc.Get("proxy-groups").([]interface{})
	for _, g := range groups {
		gm, ok := g.(model.OMap)
		if !ok {
			continue
		}
		name, _ := gm.Get("name").(string)
		members, _ := gm.Get("proxies").([]interface{})
		switch name {
		case clashGroupSelect:
			for _, n := range names {
				members = append(members, n)
			}
		case clashGroupAuto:
			members = members[:0]
			for _, n := range names {
				members = append(members, n)
			}
		default:
			continue
		}
		gm.Set("proxies", members)
	}

	return EmitYAML(doc), nil
}

func parseClashBase() (model.OMap, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(clashBase, &root); err != nil {
		return nil, parseError("clash 模板解析失败", err)
	}
	if len(root.Content) == 0 {
		return nil, parseError("clash 模板为空", nil)
	}
	v, err := nodeValue(root.Content[0])
	if err != nil {
		return nil, err
	}
	doc, ok := v.(model.OMap)
	if !ok {
		return nil, parseError("clash 模板根节点必须是映射", nil)
	}
	return doc, nil
}

// nodeValue converts a yaml.Node tree into OMap/slice/scalar values,
// preserving mapping key order. yaml.v3's plain map decode would lose it.
func nodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var m model.OMap
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, parseError(fmt.Sprintf("clash 模板标量解析失败（第 %d 行）", n.Line), err)
		}
		return v, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	}
	return nil, parseError(fmt.Sprintf("clash 模板包含不支持的节点类型（第 %d 行）", n.Line), nil)
}
