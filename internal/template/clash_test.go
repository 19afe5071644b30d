package template

import (
	"strings"
	"testing"

	"github.com/nodepanel/subcodec/internal/model"
)

func sampleProxy(name string) model.OMap {
	var p model.OMap
	p.Set("name", name)
	p.Set("type", "vmess")
	p.Set("server", "vm.example.com")
	p.Set("port", 443)
	p.Set("uuid", "uuid-1")
	return p
}

func TestMergeClashInjectsProxies(t *testing.T) {
	out, err := MergeClash([]model.OMap{sampleProxy("HK 节点")}, []string{"HK 节点"})
	if err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	if !strings.Contains(out, "- { name: HK 节点, type: vmess, server: vm.example.com, port: 443, uuid: uuid-1 }") {
		t.Fatalf("代理记录未注入:\n%s", out)
	}
	if !strings.Contains(out, "proxies: [♻️ 自动选择, 🎯 全球直连, HK 节点]") {
		t.Fatalf("节点选择分组成员错误:\n%s", out)
	}
	if !strings.Contains(out, "type: url-test") || !strings.Contains(out, "proxies: [HK 节点] }") {
		t.Fatalf("自动选择分组成员错误:\n%s", out)
	}
}

func TestMergeClashPreservesTemplate(t *testing.T) {
	out, err := MergeClash([]model.OMap{sampleProxy("HK 节点")}, []string{"HK 节点"})
	if err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	for _, fixed := range []string{
		"mode: rule",
		"enhanced-mode: fake-ip",
		"fake-ip-range: 198.18.0.1/16",
		`listen: "0.0.0.0:53"`,
		`- "GEOIP,CN,🎯 全球直连"`,
		`- "MATCH,🚀 节点选择"`,
	} {
		if !strings.Contains(out, fixed) {
			t.Fatalf("模板固定内容 %q 丢失:\n%s", fixed, out)
		}
	}
	// Rule order must survive the merge.
	if strings.Index(out, "GEOIP,LAN") > strings.Index(out, "GEOIP,CN") ||
		strings.Index(out, "GEOIP,CN") > strings.Index(out, "MATCH,") {
		t.Fatalf("规则顺序被改变:\n%s", out)
	}
}

func TestMergeClashConcurrentSafe(t *testing.T) {
	done := make(chan string, 2)
	for i := 0; i < 2; i++ {
		go func(name string) {
			out, err := MergeClash([]model.OMap{sampleProxy(name)}, []string{name})
			if err != nil {
				done <- ""
				return
			}
			done <- out
		}([]string{"A 节点", "B 节点"}[i])
	}
	a, b := <-done, <-done
	if a == "" || b == "" {
		t.Fatal("并发合并失败")
	}
	if a == b {
		t.Fatal("两次合并结果不应相同")
	}
}
