package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nodepanel/subcodec/internal/model"
)

// EmitYAML serializes an ordered document with the exact shape Clash
// subscriptions conventionally use: 2-space indentation, and list items that
// are themselves maps rendered as single-line inline maps. It covers only the
// value kinds a Clash config contains; it is not a general YAML writer.
func EmitYAML(doc model.OMap) string {
	var b strings.Builder
	emitMap(&b, doc, 0)
	return b.String()
}

func emitMap(b *strings.Builder, m model.OMap, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, kv := range m {
		switch v := kv.Value.(type) {
		case model.OMap:
			b.WriteString(pad + yamlKey(kv.Key) + ":\n")
			emitMap(b, v, indent+2)
		case []interface{}:
			if len(v) == 0 {
				b.WriteString(pad + yamlKey(kv.Key) + ": []\n")
				continue
			}
			b.WriteString(pad + yamlKey(kv.Key) + ":\n")
			emitList(b, v, indent+2)
		default:
			b.WriteString(pad + yamlKey(kv.Key) + ": " + yamlScalar(v) + "\n")
		}
	}
}

func emitList(b *strings.Builder, list []interface{}, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, item := range list {
		switch v := item.(type) {
		case model.OMap:
			b.WriteString(pad + "- " + inlineMap(v) + "\n")
		default:
			b.WriteString(pad + "- " + yamlScalar(v) + "\n")
		}
	}
}

func inlineMap(m model.OMap) string {
	parts := make([]string, 0, len(m))
	for _, kv := range m {
		parts = append(parts, yamlKey(kv.Key)+": "+inlineValue(kv.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func inlineValue(v interface{}) string {
	switch t := v.(type) {
	case model.OMap:
		return inlineMap(t)
	case map[string]interface{}:
		return inlineMap(sortedOMap(t))
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, inlineValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, yamlScalar(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return yamlScalar(v)
	}
}

// sortedOMap gives plain maps a stable key order inside inline maps.
func sortedOMap(m map[string]interface{}) model.OMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	var out model.OMap
	for _, k := range keys {
		out.Set(k, m[k])
	}
	return out
}

func yamlScalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if yamlBareSafe(t) {
			return t
		}
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strconv.Quote(fmt.Sprintf("%v", v))
	}
}

func yamlKey(k string) string {
	if yamlBareSafe(k) {
		return k
	}
	return strconv.Quote(k)
}

func yamlBareSafe(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	if strings.ContainsAny(s, "\t\r\n:#{}[],&*?|<>=!%@`\"'") {
		return false
	}
	switch s[0] {
	case '-', '?', ':', '@', '!', '*', '&', ',', '#':
		return false
	}
	switch s {
	case "true", "false", "null", "yes", "no", "on", "off":
		return false
	}
	return true
}
