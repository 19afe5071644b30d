package template

import (
	"encoding/json"
	"testing"
)

func parseOutbounds(t *testing.T, raw string) []map[string]interface{} {
	t.Helper()
	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("输出必须是合法 JSON: %v", err)
	}
	list, _ := cfg["outbounds"].([]interface{})
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("outbound 不是对象: %v", item)
		}
		out = append(out, m)
	}
	return out
}

func findOutbound(obs []map[string]interface{}, tag string) map[string]interface{} {
	for _, ob := range obs {
		if ob["tag"] == tag {
			return ob
		}
	}
	return nil
}

func members(ob map[string]interface{}) []string {
	list, _ := ob["outbounds"].([]interface{})
	out := make([]string, 0, len(list))
	for _, m := range list {
		s, _ := m.(string)
		out = append(out, s)
	}
	return out
}

func TestMergeSingboxRegionPruning(t *testing.T) {
	nodes := []map[string]interface{}{
		{"type": "shadowsocks", "tag": "HK-1", "server": "1.2.3.4", "server_port": 443},
		{"type": "shadowsocks", "tag": "US-1", "server": "5.6.7.8", "server_port": 443},
	}
	raw, err := MergeSingbox(nodes, []string{"HK-1", "US-1"}, map[string][]string{
		"🇭🇰 香港": {"HK-1"},
		"🇺🇸 美国": {"US-1"},
	})
	if err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	obs := parseOutbounds(t, raw)

	if findOutbound(obs, "🇹🇼 台湾") != nil || findOutbound(obs, "🎥 奈飞") != nil {
		t.Fatal("零命中的区域分组必须被删除")
	}
	hk := findOutbound(obs, "🇭🇰 香港")
	if hk == nil {
		t.Fatal("命中的区域分组丢失")
	}
	got := members(hk)
	if len(got) != 1 || got[0] != "HK-1" {
		t.Fatalf("香港分组成员错误: %v", got)
	}

	global := findOutbound(obs, "GLOBAL")
	if global == nil {
		t.Fatal("GLOBAL 分组丢失")
	}
	for _, m := range members(global) {
		if m == "🇹🇼 台湾" || m == "🇯🇵 日本" {
			t.Fatalf("被删除分组的 tag 未从 GLOBAL 清除: %v", members(global))
		}
	}
	seen := map[string]bool{}
	for _, m := range members(global) {
		seen[m] = true
	}
	for _, want := range []string{"🔰 手动切换", "🇭🇰 香港", "🇺🇸 美国", "HK-1", "US-1"} {
		if !seen[want] {
			t.Fatalf("GLOBAL 缺少成员 %s: %v", want, members(global))
		}
	}
}

func TestMergeSingboxCatchAllGetsAllTags(t *testing.T) {
	nodes := []map[string]interface{}{
		{"type": "trojan", "tag": "中转-1", "server": "1.2.3.4", "server_port": 443},
	}
	raw, err := MergeSingbox(nodes, []string{"中转-1"}, map[string][]string{})
	if err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	obs := parseOutbounds(t, raw)

	manual := findOutbound(obs, "🔰 手动切换")
	if manual == nil {
		t.Fatal("手动切换分组丢失")
	}
	got := members(manual)
	if len(got) != 1 || got[0] != "中转-1" {
		t.Fatalf("手动切换成员错误: %v", got)
	}

	for _, infra := range []string{"direct", "block", "dns-out"} {
		if findOutbound(obs, infra) == nil {
			t.Fatalf("基础 outbound %s 丢失", infra)
		}
	}
	if findOutbound(obs, "中转-1") == nil {
		t.Fatal("节点 outbound 丢失")
	}
}
