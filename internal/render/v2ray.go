package render

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
)

// vmessShare is the v2rayN share-link payload. Field order is the order
// clients emit; every value is a string by convention.
type vmessShare struct {
	V    string `json:"v"`
	PS   string `json:"ps"`
	Add  string `json:"add"`
	Port string `json:"port"`
	ID   string `json:"id"`
	Aid  string `json:"aid"`
	Net  string `json:"net"`
	Type string `json:"type"`
	Host string `json:"host"`
	Path string `json:"path"`
	TLS  string `json:"tls"`
	SNI  string `json:"sni"`
	Alpn string `json:"alpn"`
}

func vmessLink(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ep := in.EP
	share := vmessShare{
		V:    "2",
		PS:   in.Tag,
		Add:  ep.Server,
		Port: strconv.Itoa(ep.Port),
		ID:   in.User.UUID,
		Aid:  endpoint.StrOr(ep.Config, "alter_id", "0"),
		Net:  streamType(ep),
		Type: "none",
	}
	switch share.Net {
	case "ws":
		share.Host = wsHost(ep)
		share.Path = wsPath(ep)
	case "grpc":
		share.Path = serviceName(ep)
		share.Type = "gun"
	}
	if tlsEnabled(ep) {
		share.TLS = "tls"
		share.SNI = ep.TLSHost
		share.Alpn = strings.Join(alpnList(ep), ",")
	}
	raw, err := json.Marshal(share)
	if err != nil {
		return nil
	}
	return &Fragment{Line: "vmess://" + base64.StdEncoding.EncodeToString(raw)}
}

func vlessLink(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ep := in.EP
	var q query
	q.add("encryption", "none")
	q.add("flow", endpoint.Str(ep.Config, "flow"))

	switch tlsType(ep) {
	case "reality":
		q.add("security", "reality")
		q.add("sni", ep.TLSHost)
		q.add("fp", fingerprint(ep))
		q.add("pbk", derive.RealityPublicKey(ep.Config, ep.Client))
		q.add("sid", in.pickShortID(shortIDList(ep)))
	case "tls":
		q.add("security", "tls")
		q.add("sni", ep.TLSHost)
		q.add("fp", fingerprint(ep))
		q.add("alpn", strings.Join(alpnList(ep), ","))
	}

	st := streamType(ep)
	q.add("type", st)
	switch st {
	case "ws":
		q.add("host", wsHost(ep))
		q.add("path", wsPath(ep))
	case "grpc":
		q.add("serviceName", serviceName(ep))
		q.add("mode", "gun")
	}
	return &Fragment{Line: "vless://" + in.User.UUID + "@" + hostPort(ep) + "?" + q.encode() + "#" + escapeName(in.Tag)}
}

func trojanLink(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	var q query
	q.add("sni", ep.TLSHost)
	q.add("alpn", strings.Join(alpnList(ep), ","))
	q.addRaw("allowInsecure", "1")

	st := streamType(ep)
	if st != "tcp" {
		q.add("type", st)
	}
	switch st {
	case "ws":
		q.add("host", wsHost(ep))
		q.add("path", wsPath(ep))
	case "grpc":
		q.add("serviceName", serviceName(ep))
	}
	return &Fragment{Line: "trojan://" + url.QueryEscape(secret) + "@" + hostPort(ep) + "?" + q.encode() + "#" + escapeName(in.Tag)}
}

func shadowsocksLink(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	if method == "" {
		return nil
	}
	password := derive.BuildSS2022Password(ep.Config, in.User.Secret())
	if password == "" {
		return nil
	}
	userinfo := base64.StdEncoding.EncodeToString([]byte(method + ":" + password))
	link := "ss://" + userinfo + "@" + hostPort(ep)

	obfs := endpoint.Str(ep.Config, "obfs")
	if obfs != "" && obfs != "plain" {
		opts := "obfs=" + obfs
		if host := wsHost(ep); host != "" {
			opts += ";obfs-host=" + host
		}
		if path := endpoint.Str(ep.Config, "path"); path != "" {
			opts += ";obfs-uri=" + derive.NormalizePath(path)
		}
		var q query
		q.addRaw("plugin", "obfs-local")
		q.addRaw("plugin-opts", opts)
		link += "?" + q.encode()
	}
	return &Fragment{Line: link + "#" + escapeName(in.Tag)}
}

// hysteria2Link emits the legacy "hysteria://" scheme with explicit
// protocol=udp, which both v2rayN and Shadowrocket import.
func hysteria2Link(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	var q query
	q.addRaw("protocol", "udp")
	q.add("auth", secret)
	q.add("peer", ep.TLSHost)
	q.addRaw("insecure", "1")
	q.addRaw("upmbps", upMbps(ep))
	q.addRaw("downmbps", downMbps(ep))
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" {
		q.add("obfs", obfs)
		q.add("obfsParam", endpoint.Str(ep.Config, "obfs_password"))
	}
	return &Fragment{Line: "hysteria://" + hostPort(ep) + "?" + q.encode() + "#" + escapeName(in.Tag)}
}
