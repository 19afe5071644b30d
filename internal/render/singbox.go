package render

import (
	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
)

func singboxBase(in Input, typ string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"tag":         in.Tag,
		"server":      in.EP.Server,
		"server_port": in.EP.Port,
	}
}

// singboxTLS builds the outbound "tls" object; nil when TLS is off.
func singboxTLS(in Input) map[string]interface{} {
	ep := in.EP
	t := tlsType(ep)
	if t == "" {
		return nil
	}
	tls := map[string]interface{}{
		"enabled":     true,
		"server_name": ep.TLSHost,
		"insecure":    true,
		"utls": map[string]interface{}{
			"enabled":     true,
			"fingerprint": fingerprint(ep),
		},
	}
	if a := alpnList(ep); a != nil {
		tls["alpn"] = a
	}
	if t == "reality" {
		reality := map[string]interface{}{
			"enabled":    true,
			"public_key": derive.RealityPublicKey(ep.Config, ep.Client),
		}
		if sid := in.pickShortID(shortIDList(ep)); sid != "" {
			reality["short_id"] = sid
		}
		tls["reality"] = reality
		delete(tls, "insecure")
	}
	return tls
}

// singboxTransport builds the "transport" object for ws/grpc; nil for tcp.
func singboxTransport(ep endpoint.Endpoint) map[string]interface{} {
	switch streamType(ep) {
	case "ws":
		tr := map[string]interface{}{
			"type": "ws",
			"path": wsPath(ep),
		}
		if h := wsHost(ep); h != "" {
			tr["headers"] = map[string]interface{}{"Host": h}
		}
		return tr
	case "grpc":
		return map[string]interface{}{
			"type":         "grpc",
			"service_name": serviceName(ep),
		}
	}
	return nil
}

func singboxVmess(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ob := singboxBase(in, "vmess")
	ob["uuid"] = in.User.UUID
	ob["alter_id"] = endpoint.Int(in.EP.Config, "alter_id")
	ob["security"] = "auto"
	if tls := singboxTLS(in); tls != nil {
		ob["tls"] = tls
	}
	if tr := singboxTransport(in.EP); tr != nil {
		ob["transport"] = tr
	}
	return &Fragment{Outbound: ob}
}

func singboxVless(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ob := singboxBase(in, "vless")
	ob["uuid"] = in.User.UUID
	if flow := endpoint.Str(in.EP.Config, "flow"); flow != "" {
		ob["flow"] = flow
	}
	if tls := singboxTLS(in); tls != nil {
		ob["tls"] = tls
	}
	if tr := singboxTransport(in.EP); tr != nil {
		ob["transport"] = tr
	}
	return &Fragment{Outbound: ob}
}

func singboxTrojan(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ob := singboxBase(in, "trojan")
	ob["password"] = secret
	tls := singboxTLS(in)
	if tls == nil {
		// trojan always runs over TLS even when the blob omits the flag
		tls = map[string]interface{}{
			"enabled":     true,
			"server_name": in.EP.TLSHost,
			"insecure":    true,
		}
	}
	ob["tls"] = tls
	if tr := singboxTransport(in.EP); tr != nil {
		ob["transport"] = tr
	}
	return &Fragment{Outbound: ob}
}

func singboxShadowsocks(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	if method == "" {
		return nil
	}
	password := derive.BuildSS2022Password(ep.Config, in.User.Secret())
	if password == "" {
		return nil
	}
	ob := singboxBase(in, "shadowsocks")
	ob["method"] = method
	ob["password"] = password
	return &Fragment{Outbound: ob}
}

func singboxHysteria2(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	ob := singboxBase(in, "hysteria2")
	ob["password"] = secret
	up, down := endpoint.Int(ep.Config, "up_mbps"), endpoint.Int(ep.Config, "down_mbps")
	if up == 0 {
		up = 100
	}
	if down == 0 {
		down = 100
	}
	ob["up_mbps"] = up
	ob["down_mbps"] = down
	ob["tls"] = map[string]interface{}{
		"enabled":     true,
		"server_name": ep.TLSHost,
		"insecure":    true,
	}
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" {
		o := map[string]interface{}{"type": obfs}
		if p := endpoint.Str(ep.Config, "obfs_password"); p != "" {
			o["password"] = p
		}
		ob["obfs"] = o
	}
	return &Fragment{Outbound: ob}
}

func singboxAnyTLS(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	ob := singboxBase(in, "anytls")
	ob["password"] = secret
	ob["tls"] = map[string]interface{}{
		"enabled":     true,
		"server_name": ep.TLSHost,
		"insecure":    true,
	}
	return &Fragment{Outbound: ob}
}
