package template

import "encoding/json"

// OverrideClashBase replaces the embedded Clash base template. Call once at
// startup, before any merge runs.
func OverrideClashBase(raw []byte) error {
	old := clashBase
	clashBase = raw
	if _, err := parseClashBase(); err != nil {
		clashBase = old
		return err
	}
	return nil
}

// OverrideSingboxBase replaces the embedded sing-box base template.
func OverrideSingboxBase(raw []byte) error {
	var cfg map[string]interface{}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return parseError("sing-box 模板解析失败", err)
	}
	singboxBase = raw
	return nil
}
