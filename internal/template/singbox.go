package template

import (
	_ "embed"
	"encoding/json"
)

//go:embed assets/singbox.json
var singboxBase []byte

// singbox selector tags that always receive the full node-tag list.
var singboxCatchAll = map[string]bool{
	"🔰 手动切换": true,
	"GLOBAL":  true,
}

// MergeSingbox builds the final sing-box config: node outbounds first, then
// the template's selector/direct/block/dns outbounds with rewritten member
// lists. byRegion maps a region selector tag to the node tags it matched; a
// region selector with no matches is dropped and purged from every other
// selector's members. Pretty-printed JSON.
func MergeSingbox(outbounds []map[string]interface{}, tags []string, byRegion map[string][]string) (string, error) {
	var cfg map[string]interface{}
	if err := json.Unmarshal(singboxBase, &cfg); err != nil {
		return "", parseError("sing-box 模板解析失败", err)
	}

	tmplOut, _ := cfg["outbounds"].([]interface{})

	// First pass: find region selectors with zero matches.
	dropped := map[string]bool{}
	for _, raw := range tmplOut {
		ob, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		tag, _ := ob["tag"].(string)
		typ, _ := ob["type"].(string)
		if typ != "selector" || singboxCatchAll[tag] {
			continue
		}
		if len(byRegion[tag]) == 0 {
			dropped[tag] = true
		}
	}

	final := make([]interface{}, 0, len(outbounds)+len(tmplOut))
	for _, ob := range outbounds {
		final = append(final, ob)
	}
	for _, raw := range tmplOut {
		ob, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		tag, _ := ob["tag"].(string)
		switch ob["type"] {
		case "selector":
			if dropped[tag] {
				continue
			}
			if singboxCatchAll[tag] {
				ob["outbounds"] = rewriteMembers(ob["outbounds"], dropped, tags)
			} else {
				members := make([]interface{}, 0, len(byRegion[tag]))
				for _, t := range byRegion[tag] {
					members = append(members, t)
				}
				ob["outbounds"] = members
			}
			final = append(final, ob)
		case "direct", "block", "dns":
			final = append(final, ob)
		}
	}
	cfg["outbounds"] = final

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", parseError("sing-box 配置序列化失败", err)
	}
	return string(raw), nil
}

// rewriteMembers keeps the template's member entries minus dropped region
// tags, then appends every node tag.
func rewriteMembers(existing interface{}, dropped map[string]bool, tags []string) []interface{} {
	var out []interface{}
	if list, ok := existing.([]interface{}); ok {
		for _, m := range list {
			s, _ := m.(string)
			if dropped[s] {
				continue
			}
			out = append(out, m)
		}
	}
	seen := map[string]bool{}
	for _, m := range out {
		if s, ok := m.(string); ok {
			seen[s] = true
		}
	}
	for _, t := range tags {
		if seen[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}
