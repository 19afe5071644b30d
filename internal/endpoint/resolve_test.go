package endpoint

import (
	"encoding/json"
	"testing"

	"github.com/nodepanel/subcodec/internal/model"
)

func node(config string) model.ProxyNode {
	return model.ProxyNode{Name: "n", Protocol: "vmess", Config: json.RawMessage(config)}
}

func TestResolveNeverFails(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"null",
		"[]",
		`{"basic": 42, "config": "x", "client": []}`,
		`{"basic": {}}`,
	}
	for _, c := range cases {
		ep := Resolve(node(c))
		if ep.Basic == nil || ep.Config == nil || ep.Client == nil {
			t.Fatalf("配置 %q 解析后出现 nil 子段", c)
		}
		if ep.Port != 443 {
			t.Fatalf("配置 %q 应回退默认端口 443: %d", c, ep.Port)
		}
	}
}

func TestResolveServerFallback(t *testing.T) {
	ep := Resolve(node(`{"basic":{"host":"basic.host"}}`))
	if ep.Server != "basic.host" {
		t.Fatalf("应回退 basic.host: %q", ep.Server)
	}
	ep = Resolve(node(`{"basic":{"server":"basic.server","host":"basic.host"}}`))
	if ep.Server != "basic.server" {
		t.Fatalf("basic.server 优先于 basic.host: %q", ep.Server)
	}
	ep = Resolve(node(`{"basic":{"server":"b"},"config":{"server":"c"},"client":{"server":"cl"}}`))
	if ep.Server != "cl" {
		t.Fatalf("client.server 最优先: %q", ep.Server)
	}
}

func TestResolvePortFallback(t *testing.T) {
	ep := Resolve(node(`{"config":{"port":8443}}`))
	if ep.Port != 8443 {
		t.Fatalf("config.port 未生效: %d", ep.Port)
	}
	ep = Resolve(node(`{"config":{"port":8443},"client":{"port":"9443"}}`))
	if ep.Port != 9443 {
		t.Fatalf("client.port 应优先且支持字符串: %d", ep.Port)
	}
}

func TestResolveTLSHostFallback(t *testing.T) {
	ep := Resolve(node(`{"basic":{"server":"1.2.3.4"}}`))
	if ep.TLSHost != "1.2.3.4" {
		t.Fatalf("无 host 时应回退 server: %q", ep.TLSHost)
	}
	ep = Resolve(node(`{"basic":{"server":"1.2.3.4"},"config":{"host":"cdn.example.com"}}`))
	if ep.TLSHost != "cdn.example.com" {
		t.Fatalf("config.host 应优先于 server: %q", ep.TLSHost)
	}
	ep = Resolve(node(`{"config":{"host":"cdn.example.com"},"client":{"tls_host":"sni.example.com"}}`))
	if ep.TLSHost != "sni.example.com" {
		t.Fatalf("client.tls_host 最优先: %q", ep.TLSHost)
	}
}

func TestHelpers(t *testing.T) {
	m := map[string]interface{}{
		"s": " padded ",
		"n": float64(8080),
		"b": "true",
	}
	if got := Str(m, "s"); got != "padded" {
		t.Fatalf("Str 应去除首尾空白: %q", got)
	}
	if got := Int(m, "n"); got != 8080 {
		t.Fatalf("Int 应接受 float64: %d", got)
	}
	if !Bool(m, "b", false) {
		t.Fatal("Bool 应接受字符串 true")
	}
	if got := StrOr(m, "missing", "def"); got != "def" {
		t.Fatalf("StrOr 缺省值未生效: %q", got)
	}
}
