package render

import (
	"strconv"
	"strings"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
)

// quanxLine assembles "<proto>=<server>:<port>, k=v, ..., tag=<name>".
// The tag parameter always comes last.
type quanxLine struct {
	parts []string
	tag   string
}

func newQuanxLine(in Input, proto string) *quanxLine {
	return &quanxLine{
		parts: []string{proto + "=" + in.EP.Server + ":" + strconv.Itoa(in.EP.Port)},
		tag:   in.Tag,
	}
}

func (l *quanxLine) add(key, value string) {
	if value == "" {
		return
	}
	l.parts = append(l.parts, key+"="+value)
}

func (l *quanxLine) String() string {
	return strings.Join(append(l.parts, "tag="+l.tag), ", ")
}

// quanxObfs maps the transport onto Quantumult X's obfs parameter family:
// ws / wss for websocket, over-tls for plain TLS on tcp.
func quanxObfs(l *quanxLine, ep endpoint.Endpoint) {
	st := streamType(ep)
	tls := tlsEnabled(ep)
	switch {
	case st == "ws" && tls:
		l.add("obfs", "wss")
	case st == "ws":
		l.add("obfs", "ws")
	case tls:
		l.add("obfs", "over-tls")
	default:
		return
	}
	if st == "ws" {
		l.add("obfs-uri", wsPath(ep))
	}
	if h := wsHost(ep); h != "" && (st == "ws" || tls) {
		l.add("obfs-host", h)
	}
	if tls {
		l.add("tls-verification", "false")
	}
}

func quanxVmess(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	l := newQuanxLine(in, "vmess")
	l.add("method", "chacha20-poly1305")
	l.add("password", in.User.UUID)
	quanxObfs(l, in.EP)
	l.add("fast-open", "false")
	l.add("udp-relay", "true")
	return &Fragment{Line: l.String()}
}

func quanxVless(in Input) *Fragment {
	if in.User.UUID == "" {
		return nil
	}
	ep := in.EP
	l := newQuanxLine(in, "vless")
	l.add("method", "none")
	l.add("password", in.User.UUID)
	if realityEnabled(ep) {
		l.add("obfs", "over-tls")
		l.add("obfs-host", ep.TLSHost)
		l.add("tls-verification", "false")
		l.add("tls13", "true")
		l.add("tls-host", ep.TLSHost)
		l.add("reality-base64-pubkey", derive.RealityPublicKey(ep.Config, ep.Client))
		l.add("reality-shortid", in.pickShortID(shortIDList(ep)))
	} else {
		quanxObfs(l, ep)
	}
	l.add("fast-open", "false")
	l.add("udp-relay", "true")
	return &Fragment{Line: l.String()}
}

func quanxTrojan(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	l := newQuanxLine(in, "trojan")
	l.add("password", secret)
	if streamType(ep) == "ws" {
		l.add("obfs", "wss")
		l.add("obfs-uri", wsPath(ep))
		l.add("obfs-host", wsHost(ep))
	} else {
		l.add("over-tls", "true")
	}
	l.add("tls-host", ep.TLSHost)
	l.add("tls-verification", "false")
	l.add("fast-open", "false")
	l.add("udp-relay", "true")
	return &Fragment{Line: l.String()}
}

func quanxShadowsocks(in Input) *Fragment {
	ep := in.EP
	method := endpoint.StrOr(ep.Config, "cipher", endpoint.Str(ep.Config, "method"))
	if method == "" {
		return nil
	}
	password := derive.BuildSS2022Password(ep.Config, in.User.Secret())
	if password == "" {
		return nil
	}
	l := newQuanxLine(in, "shadowsocks")
	l.add("method", method)
	l.add("password", password)
	if obfs := endpoint.Str(ep.Config, "obfs"); obfs != "" && obfs != "plain" {
		l.add("obfs", obfs)
		l.add("obfs-host", endpoint.StrOr(ep.Config, "obfs_password", wsHost(ep)))
	}
	l.add("fast-open", "false")
	l.add("udp-relay", "true")
	return &Fragment{Line: l.String()}
}
