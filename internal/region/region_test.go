package region

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want []string
	}{
		{"HK-01", []string{"🇭🇰 香港"}},
		{"香港 IEPL", []string{"🇭🇰 香港"}},
		{"🇯🇵 东京", []string{"🇯🇵 日本"}},
		{"US Netflix 解锁", []string{"🇺🇸 美国", "🎥 奈飞"}},
		{"中转节点", nil},
	}
	for _, c := range cases {
		got := Classify(c.name)
		if len(got) != len(c.want) {
			t.Fatalf("Classify(%q) = %v, want %v", c.name, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("Classify(%q) = %v, want %v", c.name, got, c.want)
			}
		}
	}
}

func TestTagsOrderStable(t *testing.T) {
	tags := Tags()
	if len(tags) != 7 {
		t.Fatalf("分组数量应为 7: %d", len(tags))
	}
	if tags[0] != "🇭🇰 香港" || tags[len(tags)-1] != "🎥 奈飞" {
		t.Fatalf("分组顺序不稳定: %v", tags)
	}
}

func TestClassifyMultiMatchKeepsTableOrder(t *testing.T) {
	got := Classify("HK 奈飞专线")
	if len(got) != 2 || got[0] != "🇭🇰 香港" || got[1] != "🎥 奈飞" {
		t.Fatalf("多命中应按表序返回: %v", got)
	}
}
