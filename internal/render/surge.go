package render

import (
	"strconv"
	"strings"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
)

// surgeLine assembles "<name> = <type>, <server>, <port>, k=v, ...".
type surgeLine struct {
	parts []string
}

func newSurgeLine(in Input, typ string) *surgeLine {
	return &surgeLine{parts: []string{
		in.Tag + " = " + typ,
		in.EP.Server,
		strconv.Itoa(in.EP.Port),
	}}
}

func (l *surgeLine) add(key, value string) {
	if value == "" {
		return
	}
	l.parts = append(l.parts, key+"="+value)
}

func (l *surgeLine) String() string {
	return strings.Join(l.parts, ", ")
}

func surgeVmess(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ep := in.EP
	l := newSurgeLine(in, "vmess")
	l.add("username", in.User.UUID)
	if tlsEnabled(ep) {
		l.add("tls", "true")
		l.add("sni", ep.TLSHost)
		l.add("skip-cert-verify", "true")
	}
	if streamType(ep) == "ws" {
		l.add("ws", "true")
		l.add("ws-path", wsPath(ep))
		if h := wsHost(ep); h != "" {
			l.add("ws-headers", "Host:"+h)
		}
	}
	return &Fragment{Line: l.String()}
}

func surgeTrojan(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	l := newSurgeLine(in, "trojan")
	l.add("password", secret)
	l.add("sni", ep.TLSHost)
	l.add("skip-cert-verify", "true")
	if streamType(ep) == "ws" {
		l.add("ws", "true")
		l.add("ws-path", wsPath(ep))
		if h := wsHost(ep); h != "" {
			l.add("ws-headers", "Host:"+h)
		}
	}
	return &Fragment{Line: l.String()}
}

func surgeShadowsocks(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	if method == "" {
		return nil
	}
	password := derive.BuildSS2022Password(ep.Config, in.User.Secret())
	if password == "" {
		return nil
	}
	l := newSurgeLine(in, "ss")
	l.add("encrypt-method", method)
	l.add("password", password)
	l.add("udp-relay", "true")
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" && obfs != "plain" {
		l.add("obfs", obfs)
		l.add("obfs-host", endpoint.StrOr(ep.Config, "obfs_password", wsHost(ep)))
	}
	return &Fragment{Line: l.String()}
}

func surgeHysteria2(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	l := newSurgeLine(in, "hysteria2")
	l.add("password", secret)
	l.add("sni", ep.TLSHost)
	l.add("skip-cert-verify", "true")
	l.add("download-bandwidth", downMbps(ep))
	return &Fragment{Line: l.String()}
}

func surgeAnyTLS(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	l := newSurgeLine(in, "anytls")
	l.add("password", secret)
	l.add("sni", ep.TLSHost)
	l.add("tfo", "true")
	l.add("skip-cert-verify", "true")
	return &Fragment{Line: l.String()}
}
