package render

import (
	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
	"github.com/nodepanel/subcodec/internal/model"
)

// clashBase starts every proxy record with the four keys clients expect
// first: name, type, server, port.
func clashBase(in Input, typ string) model.OMap {
	var m model.OMap
	m.Set("name", in.Tag)
	m.Set("type", typ)
	m.Set("server", in.EP.Server)
	m.Set("port", in.EP.Port)
	return m
}

// clashStream appends the transport and TLS keys shared by the stream-based
// protocols (vmess/vless/trojan).
func clashStream(m *model.OMap, in Input) {
	ep := in.EP
	st := streamType(ep)
	if st != "tcp" {
		m.Set("network", st)
	}
	switch st {
	case "ws":
		opts := map[string]interface{}{"path": wsPath(ep)}
		if h := wsHost(ep); h != "" {
			opts["headers"] = map[string]interface{}{"Host": h}
		}
		m.Set("ws-opts", opts)
	case "grpc":
		m.Set("grpc-opts", map[string]interface{}{"grpc-service-name": serviceName(ep)})
	}

	switch tlsType(ep) {
	case "tls":
		m.Set("tls", true)
		m.Set("servername", ep.TLSHost)
		if a := alpnList(ep); a != nil {
			m.Set("alpn", a)
		}
		m.Set("skip-cert-verify", true)
	case "reality":
		m.Set("tls", true)
		m.Set("servername", ep.TLSHost)
		m.Set("client-fingerprint", fingerprint(ep))
		opts := map[string]interface{}{
			"public-key": derive.RealityPublicKey(ep.Config, ep.Client),
		}
		if sid := in.pickShortID(shortIDList(ep)); sid != "" {
			opts["short-id"] = sid
		}
		m.Set("reality-opts", opts)
	}
}

func clashVmess(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	m := clashBase(in, "vmess")
	m.Set("uuid", in.User.UUID)
	m.Set("alterId", endpoint.Int(in.EP.Config, "alter_id"))
	m.Set("cipher", "auto")
	m.Set("udp", true)
	clashStream(&m, in)
	return &Fragment{ClashProxy: m}
}

func clashVless(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	m := clashBase(in, "vless")
	m.Set("uuid", in.User.UUID)
	m.Set("udp", true)
	if flow := endpoint.Str(in.EP.Config, "flow"); flow != "" {
		m.Set("flow", flow)
	}
	clashStream(&m, in)
	return &Fragment{ClashProxy: m}
}

func clashTrojan(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	m := clashBase(in, "trojan")
	m.Set("password", secret)
	m.Set("udp", true)
	m.Set("sni", in.EP.TLSHost)
	m.Set("skip-cert-verify", true)
	if st := streamType(in.EP); st != "tcp" {
		clashStream(&m, in)
	}
	return &Fragment{ClashProxy: m}
}

func clashShadowsocks(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	if method == "" {
		return nil
	}
	password := derive.BuildSS2022Password(ep.Config, in.User.Secret())
	if password == "" {
		return nil
	}
	m := clashBase(in, "ss")
	m.Set("cipher", method)
	m.Set("password", password)
	m.Set("udp", true)
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" && obfs != "plain" {
		m.Set("plugin", "obfs")
		opts := map[string]interface{}{"mode": obfs}
		if h := endpoint.StrOr(ep.Config, "obfs_password", wsHost(ep)); h != "" {
			opts["host"] = h
		}
		m.Set("plugin-opts", opts)
	}
	return &Fragment{ClashProxy: m}
}

func clashShadowsocksR(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	secret := in.User.Secret()
	if method == "" || secret == "" {
		return nil
	}
	m := clashBase(in, "ssr")
	m.Set("cipher", method)
	m.Set("password", secret)
	m.Set("protocol", endpoint.StrOr(ep.Config, "protocol", "origin"))
	if v := endpoint.Str(ep.Config, "protocol_param"); v != "" {
		m.Set("protocol-param", v)
	}
	m.Set("obfs", endpoint.StrOr(ep.Config, "obfs", "plain"))
	if v := endpoint.Str(ep.Config, "obfs_param"); v != "" {
		m.Set("obfs-param", v)
	}
	m.Set("udp", true)
	return &Fragment{ClashProxy: m}
}

func clashHysteria2(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	m := clashBase(in, "hysteria2")
	m.Set("password", secret)
	m.Set("sni", ep.TLSHost)
	m.Set("skip-cert-verify", true)
	m.Set("up", upMbps(ep))
	m.Set("down", downMbps(ep))
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" {
		m.Set("obfs", obfs)
		if p := endpoint.Str(ep.Config, "obfs_password"); p != "" {
			m.Set("obfs-password", p)
		}
	}
	return &Fragment{ClashProxy: m}
}

func clashAnyTLS(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	m := clashBase(in, "anytls")
	m.Set("password", secret)
	m.Set("udp", true)
	m.Set("client-fingerprint", fingerprint(ep))
	m.Set("sni", ep.TLSHost)
	m.Set("skip-cert-verify", true)
	return &Fragment{ClashProxy: m}
}
