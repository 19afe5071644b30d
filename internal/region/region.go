// Package region assigns nodes to named selector groups by matching their
// display names against an ordered table of keyword/flag-emoji patterns.
// Only the sing-box encoder consumes it.
package region

import "regexp"

type group struct {
	tag     string
	pattern *regexp.Regexp
}

// The table is ordered so selector groups appear in a stable order in the
// merged config. A node may match several groups (e.g. "HK Netflix").
var table = []group{
	{"🇭🇰 香港", regexp.MustCompile(`(?i)(HK|Hong\s*Kong|香港|🇭🇰)`)},
	{"🇹🇼 台湾", regexp.MustCompile(`(?i)(TW|Taiwan|台湾|台灣|🇹🇼)`)},
	{"🇸🇬 新加坡", regexp.MustCompile(`(?i)(SG|Singapore|新加坡|狮城|🦁|🇸🇬)`)},
	{"🇯🇵 日本", regexp.MustCompile(`(?i)(JP|Japan|日本|东京|大阪|🇯🇵)`)},
	{"🇺🇸 美国", regexp.MustCompile(`(?i)(US|USA|America|United\s*States|美国|🇺🇸)`)},
	{"🇰🇷 韩国", regexp.MustCompile(`(?i)(KR|Korea|韩国|首尔|🇰🇷)`)},
	{"🎥 奈飞", regexp.MustCompile(`(?i)(NF|Netflix|奈飞|解锁)`)},
}

// Tags returns the selector tags in table order.
func Tags() []string {
	out := make([]string, 0, len(table))
	for _, g := range table {
		out = append(out, g.tag)
	}
	return out
}

// Classify returns the tags of every group the node name matches, in table
// order. Zero matches is normal.
func Classify(name string) []string {
	var out []string
	for _, g := range table {
		if g.pattern.MatchString(name) {
			out = append(out, g.tag)
		}
	}
	return out
}
