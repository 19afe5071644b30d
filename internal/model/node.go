package model

import "encoding/json"

// Protocol identifiers as stored on node records.
const (
	ProtocolVmess        = "vmess"
	ProtocolVless        = "vless"
	ProtocolTrojan       = "trojan"
	ProtocolShadowsocks  = "shadowsocks"
	ProtocolShadowsocksR = "shadowsocksr"
	ProtocolHysteria2    = "hysteria2"
	ProtocolAnyTLS       = "anytls"
)

// KnownProtocol reports whether p is a protocol this codec knows at all.
// Unknown protocols are skipped per node, never fatal.
func KnownProtocol(p string) bool {
	switch p {
	case ProtocolVmess, ProtocolVless, ProtocolTrojan, ProtocolShadowsocks,
		ProtocolShadowsocksR, ProtocolHysteria2, ProtocolAnyTLS:
		return true
	}
	return false
}

// ProxyNode is one proxy endpoint record as supplied by the panel. Config is
// an opaque blob with conventional sub-sections "basic", "config" and
// "client"; it may be malformed or missing sections, and resolution must
// degrade to empty maps instead of failing.
type ProxyNode struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Protocol    string          `json:"protocol" validate:"required"`
	AccessClass int             `json:"access_class"`
	Active      bool            `json:"active"`
	Config      json.RawMessage `json:"config"`
}

// SubscriptionUser is the read-only credential/quota view of a panel user.
// UUID identifies the user on AEAD-based protocols (vmess/vless), Passwd on
// password-based ones (trojan/ss/hysteria2/anytls).
type SubscriptionUser struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid" validate:"omitempty,uuid4"`
	Passwd    string `json:"passwd"`
	Upload    int64  `json:"upload"`
	Download  int64  `json:"download"`
	Quota     int64  `json:"quota"`
	Used      int64  `json:"used"`
	ExpiredAt int64  `json:"expired_at"`
	Class     int    `json:"class"`
}

// Secret returns the credential used by password-based protocols: Passwd
// when set, else UUID. Several panels store only one of the two.
func (u SubscriptionUser) Secret() string {
	if u.Passwd != "" {
		return u.Passwd
	}
	return u.UUID
}
