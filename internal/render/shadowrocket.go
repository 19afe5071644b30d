package render

import (
	"net/url"

	"github.com/nodepanel/subcodec/internal/endpoint"
)

// shadowrocketAnyTLS is the one Shadowrocket encoder without a shared link
// form: "anytls://<password>@host:port?...#name".
func shadowrocketAnyTLS(in Input) *Fragment {
	secret := in.User.Secret()
	if secret == "" {
		return nil
	}
	ep := in.EP
	var q query
	q.add("sni", ep.TLSHost)
	q.addRaw("insecure", "1")
	if fp := endpoint.Str(ep.Config, "fingerprint"); fp != "" {
		q.add("fp", fp)
	}
	link := "anytls://" + url.QueryEscape(secret) + "@" + hostPort(ep)
	if enc := q.encode(); enc != "" {
		link += "?" + enc
	}
	return &Fragment{Line: link + "#" + escapeName(in.Tag)}
}
