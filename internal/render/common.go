package render

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
)

func streamType(ep endpoint.Endpoint) string {
	return endpoint.StrOr(ep.Config, "stream_type", "tcp")
}

// tlsType returns "", "tls" or "reality".
func tlsType(ep endpoint.Endpoint) string {
	t := endpoint.Str(ep.Config, "tls_type")
	switch t {
	case "tls", "reality":
		return t
	}
	return ""
}

func tlsEnabled(ep endpoint.Endpoint) bool { return tlsType(ep) != "" }

func realityEnabled(ep endpoint.Endpoint) bool { return tlsType(ep) == "reality" }

// hostPort renders the URI authority, bracketing IPv6 literals.
func hostPort(ep endpoint.Endpoint) string {
	return derive.FormatHostForURL(ep.Server) + ":" + strconv.Itoa(ep.Port)
}

// escapeName percent-encodes a node name for the URI fragment. QueryEscape
// turns spaces into "+", which clients do not decode in fragments.
func escapeName(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

func wsPath(ep endpoint.Endpoint) string {
	return derive.NormalizePath(endpoint.Str(ep.Config, "path"))
}

// wsHost is the Host header for ws transports; falls back to the TLS host.
func wsHost(ep endpoint.Endpoint) string {
	return endpoint.StrOr(ep.Config, "host", ep.TLSHost)
}

func serviceName(ep endpoint.Endpoint) string {
	return endpoint.Str(ep.Config, "service_name")
}

func fingerprint(ep endpoint.Endpoint) string {
	return endpoint.StrOr(ep.Config, "fingerprint", "chrome")
}

func alpnList(ep endpoint.Endpoint) []string {
	return derive.NormalizeStringList(endpoint.Value(ep.Config, "alpn"))
}

func shortIDList(ep endpoint.Endpoint) []string {
	return derive.NormalizeStringList(endpoint.Value(ep.Config, "short_ids"))
}

func upMbps(ep endpoint.Endpoint) string {
	return endpoint.StrOr(ep.Config, "up_mbps", "100")
}

func downMbps(ep endpoint.Endpoint) string {
	return endpoint.StrOr(ep.Config, "down_mbps", "100")
}

// query accumulates URI query parameters in insertion order. url.Values
// sorts alphabetically on Encode, which breaks byte-stable output.
type query struct {
	parts []string
}

func (q *query) add(key, value string) {
	if value == "" {
		return
	}
	q.parts = append(q.parts, key+"="+url.QueryEscape(value))
}

// addRaw appends without escaping, for values that must stay literal.
func (q *query) addRaw(key, value string) {
	if value == "" {
		return
	}
	q.parts = append(q.parts, key+"="+value)
}

func (q *query) encode() string {
	return strings.Join(q.parts, "&")
}
