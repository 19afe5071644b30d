package render

import "github.com/nodepanel/subcodec/internal/model"

// capability is one (target, protocol) cell of the support matrix: the
// encoder plus the stream types the target client cannot import. Absent
// cells mean "unsupported", and the node is skipped, not failed.
type capability struct {
	encode      func(Input) *Fragment
	skipStreams map[string]bool
}

// Quantumult X and Shadowrocket cannot import grpc transports for the
// stream-based protocols. This is intentional client behavior to preserve,
// not a gap to fix.
var grpcUnsupported = map[string]bool{"grpc": true}

var capabilities = map[Target]map[string]capability{
	TargetV2ray: {
		model.ProtocolVmess:       {encode: vmessLink},
		model.ProtocolVless:       {encode: vlessLink},
		model.ProtocolTrojan:      {encode: trojanLink},
		model.ProtocolShadowsocks: {encode: shadowsocksLink},
		model.ProtocolHysteria2:   {encode: hysteria2Link},
	},
	TargetClash: {
		model.ProtocolVmess:        {encode: clashVmess},
		model.ProtocolVless:        {encode: clashVless},
		model.ProtocolTrojan:       {encode: clashTrojan},
		model.ProtocolShadowsocks:  {encode: clashShadowsocks},
		model.ProtocolShadowsocksR: {encode: clashShadowsocksR},
		model.ProtocolHysteria2:    {encode: clashHysteria2},
		model.ProtocolAnyTLS:       {encode: clashAnyTLS},
	},
	TargetSingbox: {
		model.ProtocolVmess:       {encode: singboxVmess},
		model.ProtocolVless:       {encode: singboxVless},
		model.ProtocolTrojan:      {encode: singboxTrojan},
		model.ProtocolShadowsocks: {encode: singboxShadowsocks},
		model.ProtocolHysteria2:   {encode: singboxHysteria2},
		model.ProtocolAnyTLS:      {encode: singboxAnyTLS},
	},
	TargetSurge: {
		model.ProtocolVmess:       {encode: surgeVmess},
		model.ProtocolTrojan:      {encode: surgeTrojan},
		model.ProtocolShadowsocks: {encode: surgeShadowsocks},
		model.ProtocolHysteria2:   {encode: surgeHysteria2},
		model.ProtocolAnyTLS:      {encode: surgeAnyTLS},
	},
	TargetQuantumultX: {
		model.ProtocolVmess:       {encode: quanxVmess, skipStreams: grpcUnsupported},
		model.ProtocolVless:       {encode: quanxVless, skipStreams: grpcUnsupported},
		model.ProtocolTrojan:      {encode: quanxTrojan, skipStreams: grpcUnsupported},
		model.ProtocolShadowsocks: {encode: quanxShadowsocks},
	},
	TargetShadowrocket: {
		model.ProtocolVmess:       {encode: vmessLink, skipStreams: grpcUnsupported},
		model.ProtocolVless:       {encode: vlessLink, skipStreams: grpcUnsupported},
		model.ProtocolTrojan:      {encode: trojanLink, skipStreams: grpcUnsupported},
		model.ProtocolShadowsocks: {encode: shadowsocksLink},
		model.ProtocolHysteria2:   {encode: hysteria2Link},
		model.ProtocolAnyTLS:      {encode: shadowrocketAnyTLS},
	},
}

// Supports reports whether the (target, protocol) cell exists at all.
func Supports(target Target, protocol string) bool {
	_, ok := capabilities[target][protocol]
	return ok
}
