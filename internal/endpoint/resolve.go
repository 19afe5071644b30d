// Package endpoint normalizes a node's opaque configuration blob into the
// canonical (server, port, tlsHost) view every encoder consumes.
package endpoint

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/nodepanel/subcodec/internal/model"
)

const defaultPort = 443

// Endpoint is the resolved view of one node. It is built fresh per encode
// call, never cached and never shared across requests.
type Endpoint struct {
	Server  string
	Port    int
	TLSHost string

	// Raw sub-sections kept for protocol-specific lookups. Never nil.
	Basic  map[string]interface{}
	Config map[string]interface{}
	Client map[string]interface{}
}

// Resolve never fails: a malformed or missing blob yields three empty maps
// and default field values.
func Resolve(node model.ProxyNode) Endpoint {
	basic, config, client := splitSections(node.Config)

	e := Endpoint{Basic: basic, Config: config, Client: client}
	e.Server = firstStr(
		Str(client, "server"),
		Str(config, "server"),
		Str(basic, "server"),
		Str(basic, "host"),
	)

	e.Port = Int(client, "port")
	if e.Port == 0 {
		e.Port = Int(config, "port")
	}
	if e.Port == 0 {
		e.Port = defaultPort
	}

	e.TLSHost = firstStr(
		Str(client, "tls_host"),
		Str(config, "host"),
		e.Server,
	)
	return e
}

func splitSections(raw json.RawMessage) (basic, config, client map[string]interface{}) {
	basic = map[string]interface{}{}
	config = map[string]interface{}{}
	client = map[string]interface{}{}

	if len(raw) == 0 {
		return
	}
	var blob map[string]interface{}
	if err := json.Unmarshal(raw, &blob); err != nil {
		return
	}
	if m := asMap(blob["basic"]); m != nil {
		basic = m
	}
	if m := asMap(blob["config"]); m != nil {
		config = m
	}
	if m := asMap(blob["client"]); m != nil {
		client = m
	}
	return
}

func asMap(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}

func firstStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Str reads a string-ish value from a blob section; absent or uncastable
// values yield "".
func Str(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// StrOr is Str with a default for the absent/empty case.
func StrOr(m map[string]interface{}, key, def string) string {
	if s := Str(m, key); s != "" {
		return s
	}
	return def
}

// Int reads an int-ish value; absent or uncastable values yield 0. JSON
// numbers arrive as float64, panels sometimes store ports as strings.
func Int(m map[string]interface{}, key string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Bool reads a bool-ish value with a default for the absent case.
func Bool(m map[string]interface{}, key string, def bool) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Value returns the raw value, nil when absent.
func Value(m map[string]interface{}, key string) interface{} {
	return m[key]
}
