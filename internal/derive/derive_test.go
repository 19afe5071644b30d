package derive

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestFormatHostForURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"example.com", "example.com"},
		{"1.2.3.4", "1.2.3.4"},
		{"2001:db8::1", "[2001:db8::1]"},
		{"[2001:db8::1]", "[2001:db8::1]"},
		{"", ""},
	}
	for _, c := range cases {
		if got := FormatHostForURL(c.in); got != c.want {
			t.Fatalf("FormatHostForURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(""); got != "/" {
		t.Fatalf("空路径应得到 /，实际 %q", got)
	}
	if got := NormalizePath("ws"); got != "/ws" {
		t.Fatalf("缺少前导斜杠应补齐，实际 %q", got)
	}
	if got := NormalizePath("/ws"); got != "/ws" {
		t.Fatalf("已有前导斜杠不应改动，实际 %q", got)
	}
}

func TestNormalizeStringList(t *testing.T) {
	if got := NormalizeStringList("h2, http/1.1 ,"); len(got) != 2 || got[0] != "h2" || got[1] != "http/1.1" {
		t.Fatalf("逗号分隔字符串解析错误: %v", got)
	}
	if got := NormalizeStringList([]interface{}{"abcd", " ef01 ", 7}); len(got) != 2 || got[1] != "ef01" {
		t.Fatalf("interface 列表解析错误: %v", got)
	}
	if got := NormalizeStringList(nil); got != nil {
		t.Fatalf("nil 应得到 nil: %v", got)
	}
	if got := NormalizeStringList(" , "); got != nil {
		t.Fatalf("全空项应得到 nil: %v", got)
	}
}

func TestPickShortID(t *testing.T) {
	if got := PickShortID(nil); got != "" {
		t.Fatalf("空列表应得到空串: %q", got)
	}
	list := []string{"abcd", "ef01"}
	if got := PickShortIDWith(func(int) int { return 1 }, list); got != "ef01" {
		t.Fatalf("固定随机源应选中 ef01: %q", got)
	}
	got := PickShortID(list)
	if got != "abcd" && got != "ef01" {
		t.Fatalf("随机结果必须是集合成员: %q", got)
	}
}

func TestRealityPublicKey(t *testing.T) {
	config := map[string]interface{}{"public_key": "from-config"}
	client := map[string]interface{}{"publickey": "from-client"}
	if got := RealityPublicKey(config, client); got != "from-client" {
		t.Fatalf("client.publickey 应优先: %q", got)
	}
	client = map[string]interface{}{"public_key": "from-client-2"}
	if got := RealityPublicKey(config, client); got != "from-client-2" {
		t.Fatalf("client.public_key 次之: %q", got)
	}
	if got := RealityPublicKey(config, map[string]interface{}{}); got != "from-config" {
		t.Fatalf("最后回退 config.public_key: %q", got)
	}
}

func TestDeriveSS2022UserKeyLength(t *testing.T) {
	k128 := DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "secret")
	if len(k128) != 24 {
		t.Fatalf("aes-128 密钥 Base64 长度应为 24: %d", len(k128))
	}
	k256 := DeriveSS2022UserKey("2022-blake3-aes-256-gcm", "secret")
	if len(k256) != 44 {
		t.Fatalf("其余密钥 Base64 长度应为 44: %d", len(k256))
	}
}

func TestDeriveSS2022UserKeyDeterministic(t *testing.T) {
	a := DeriveSS2022UserKey("2022-blake3-aes-256-gcm", "same-input")
	b := DeriveSS2022UserKey("2022-blake3-aes-256-gcm", "same-input")
	if a != b {
		t.Fatalf("相同输入必须得到相同输出: %q vs %q", a, b)
	}
}

func TestDeriveSS2022UserKeyBase64Secret(t *testing.T) {
	// "aGVsbG8=" decodes to "hello"; the raw bytes feed the expansion.
	key := DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "aGVsbG8=")
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("输出必须是合法 Base64: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("解码后长度应为 16: %d", len(raw))
	}
	want := []byte("hellohellohelloh")
	if string(raw) != string(want) {
		t.Fatalf("循环扩展结果错误: %q", raw)
	}
}

func TestDeriveSS2022UserKeyRejectsBadBase64(t *testing.T) {
	// len%4 == 1 cannot be Base64, so the literal bytes are used.
	key := DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "abcde")
	raw, _ := base64.StdEncoding.DecodeString(key)
	if string(raw[:5]) != "abcde" {
		t.Fatalf("非法 Base64 应按 UTF-8 字面处理: %q", raw)
	}
}

func TestDeriveSS2022UserKeyEmptySecret(t *testing.T) {
	key := DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "")
	raw, _ := base64.StdEncoding.DecodeString(key)
	for _, b := range raw {
		if b != 0 {
			t.Fatalf("空密钥应得到全零字节: %v", raw)
		}
	}
}

func TestBuildSS2022Password(t *testing.T) {
	blake3 := map[string]interface{}{
		"cipher":   "2022-blake3-aes-128-gcm",
		"password": "serverpass",
	}
	got := BuildSS2022Password(blake3, "usersecret")
	if !strings.HasPrefix(got, "serverpass:") {
		t.Fatalf("2022-blake3 输出应带服务端密码前缀: %q", got)
	}
	if got[len("serverpass:"):] != DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "usersecret") {
		t.Fatalf("派生段与 DeriveSS2022UserKey 不一致: %q", got)
	}

	// Empty user secret falls back to the server password as input.
	got = BuildSS2022Password(blake3, "")
	want := "serverpass:" + DeriveSS2022UserKey("2022-blake3-aes-128-gcm", "serverpass")
	if got != want {
		t.Fatalf("空用户密钥应回退服务端密码: %q, want %q", got, want)
	}

	plain := map[string]interface{}{
		"cipher":   "aes-256-gcm",
		"password": "serverpass",
	}
	if got := BuildSS2022Password(plain, "usersecret"); got != "usersecret" {
		t.Fatalf("非 2022 加密应原样返回用户密钥: %q", got)
	}
	if got := BuildSS2022Password(plain, ""); got != "serverpass" {
		t.Fatalf("非 2022 加密且无用户密钥应回退服务端密码: %q", got)
	}
}
