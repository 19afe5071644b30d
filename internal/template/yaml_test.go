package template

import (
	"testing"

	"github.com/nodepanel/subcodec/internal/model"
)

func TestEmitYAMLFixture(t *testing.T) {
	var dns model.OMap
	dns.Set("enable", true)
	dns.Set("nameserver", []interface{}{"https://doh.pub/dns-query"})

	var p model.OMap
	p.Set("name", "HK 节点")
	p.Set("type", "vmess")
	p.Set("server", "vm.example.com")
	p.Set("port", 443)
	p.Set("uuid", "uuid-1")
	p.Set("udp", true)
	p.Set("network", "ws")
	p.Set("ws-opts", map[string]interface{}{"path": "/ws"})
	p.Set("tls", true)

	var doc model.OMap
	doc.Set("mode", "rule")
	doc.Set("dns", dns)
	doc.Set("proxies", []interface{}{p})

	want := `mode: rule
dns:
  enable: true
  nameserver:
    - "https://doh.pub/dns-query"
proxies:
  - { name: HK 节点, type: vmess, server: vm.example.com, port: 443, uuid: uuid-1, udp: true, network: ws, ws-opts: { path: /ws }, tls: true }
`
	if got := EmitYAML(doc); got != want {
		t.Fatalf("输出不符:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitYAMLEmptyList(t *testing.T) {
	var doc model.OMap
	doc.Set("proxies", []interface{}{})
	if got := EmitYAML(doc); got != "proxies: []\n" {
		t.Fatalf("空列表应内联为 []: %q", got)
	}
}

func TestEmitYAMLQuoting(t *testing.T) {
	var doc model.OMap
	doc.Set("listen", "0.0.0.0:53")
	doc.Set("rule", "MATCH,DIRECT")
	doc.Set("plain", "abc")
	want := "listen: \"0.0.0.0:53\"\nrule: \"MATCH,DIRECT\"\nplain: abc\n"
	if got := EmitYAML(doc); got != want {
		t.Fatalf("引号规则错误:\n got %q\nwant %q", got, want)
	}
}
