// Package derive holds the pure value-derivation helpers shared by every
// encoder: URI host formatting, path/list normalization, Reality key and
// short-id selection, and Shadowsocks-2022 per-user key expansion.
package derive

import (
	"encoding/base64"
	"math/rand"
	"strings"

	"github.com/nodepanel/subcodec/internal/endpoint"
)

// FormatHostForURL brackets a bare IPv6 literal for use in a URI host
// position; anything else passes through unchanged.
func FormatHostForURL(host string) string {
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		return "[" + host + "]"
	}
	return host
}

// NormalizePath guarantees a leading "/"; empty input yields "/".
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// NormalizeStringList accepts either a comma-delimited string or a pre-split
// list and returns trimmed, non-empty entries. Used for ALPN and Reality
// short-id lists, whose storage shape varies between panels.
func NormalizeStringList(v interface{}) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(t, ",")
	case []string:
		parts = t
	case []interface{}:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				continue
			}
			parts = append(parts, s)
		}
	default:
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IntN returns a uniform value in [0,n). Injectable so tests can pin the
// otherwise non-deterministic short-id rotation.
type IntN func(n int) int

// PickShortID selects one entry uniformly at random; empty input yields "".
func PickShortID(list []string) string {
	return PickShortIDWith(rand.Intn, list)
}

// PickShortIDWith is PickShortID with an explicit random source.
func PickShortIDWith(intn IntN, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[intn(len(list))]
}

// RealityPublicKey resolves the Reality public key with the conventional
// fallback chain: client.publickey -> client.public_key -> config.public_key.
func RealityPublicKey(config, client map[string]interface{}) string {
	if s := endpoint.Str(client, "publickey"); s != "" {
		return s
	}
	if s := endpoint.Str(client, "public_key"); s != "" {
		return s
	}
	return endpoint.Str(config, "public_key")
}

// DeriveSS2022UserKey expands a user secret into the fixed-length Base64 key
// a Shadowsocks-2022 cipher requires: 16 raw bytes when the method name
// contains "aes-128", 32 otherwise. The secret is decoded as standard Base64
// when it looks like Base64, else taken as UTF-8 bytes; the byte sequence is
// repeated cyclically to the required length. Deterministic.
func DeriveSS2022UserKey(method, secret string) string {
	keyLen := 32
	if strings.Contains(method, "aes-128") {
		keyLen = 16
	}

	raw, ok := decodeStdBase64(secret)
	if !ok {
		raw = []byte(secret)
	}
	if len(raw) == 0 {
		raw = []byte{0}
	}

	out := make([]byte, keyLen)
	for i := range out {
		out[i] = raw[i%len(raw)]
	}
	return base64.StdEncoding.EncodeToString(out)
}

// BuildSS2022Password builds the ss password field: for 2022-blake3 ciphers
// it is "<serverPassword>:<derived user key>", otherwise the user secret as
// is, falling back to the configured server password when the secret is
// absent.
func BuildSS2022Password(config map[string]interface{}, userSecret string) string {
	cipher := endpoint.StrOr(config, "cipher", endpoint.Str(config, "method"))
	serverPass := endpoint.Str(config, "password")

	if !strings.Contains(cipher, "2022-blake3") {
		if userSecret != "" {
			return userSecret
		}
		return serverPass
	}

	secret := userSecret
	if secret == "" {
		secret = serverPass
	}
	return serverPass + ":" + DeriveSS2022UserKey(cipher, secret)
}

// decodeStdBase64 accepts only well-formed standard Base64: the alphabet
// check plus the len%4==1 reject mirror what subscription clients tolerate.
func decodeStdBase64(s string) ([]byte, bool) {
	if s == "" || len(s)%4 == 1 {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '+' || c == '/':
		case c == '=':
			// Padding is only valid at the tail.
			if strings.Trim(s[i:], "=") != "" {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, true
	}
	b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, false
	}
	return b, true
}
