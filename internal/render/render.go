// Package render turns one resolved node + user into a per-target fragment:
// a share-link or config line for the line-oriented targets, a typed proxy
// record for Clash, an outbound object for sing-box.
package render

import (
	"fmt"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
	"github.com/nodepanel/subcodec/internal/model"
)

// Target is the requested subscription format.
type Target string

const (
	TargetV2ray        Target = "v2ray"
	TargetClash        Target = "clash"
	TargetQuantumultX  Target = "quantumultx"
	TargetShadowrocket Target = "shadowrocket"
	TargetSurge        Target = "surge"
	TargetSingbox      Target = "singbox"
)

// ParseTarget validates a caller-supplied format identifier.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetV2ray, TargetClash, TargetQuantumultX, TargetShadowrocket, TargetSurge, TargetSingbox:
		return Target(s), nil
	}
	return "", &RenderError{
		AppError: model.AppError{
			Code:    model.CodeUnsupportedTarget,
			Message: fmt.Sprintf("不支持的 target：%s", s),
			Stage:   "render",
			Snippet: s,
		},
	}
}

type RenderError struct {
	AppError model.AppError
	Cause    error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// Input is everything one encode call may read. It is assembled fresh per
// node and discarded with the fragment.
type Input struct {
	Node model.ProxyNode
	User model.SubscriptionUser
	EP   endpoint.Endpoint

	// Tag is the display name to embed; for sing-box the caller passes the
	// collision-free tag, for every other target the node name.
	Tag string

	// IntN pins the Reality short-id pick in tests; nil uses math/rand.
	IntN derive.IntN
}

func (in Input) pickShortID(list []string) string {
	if in.IntN != nil {
		return derive.PickShortIDWith(in.IntN, list)
	}
	return derive.PickShortID(list)
}

// Fragment is the per-node, per-target result. Exactly one of Line,
// ClashProxy, Outbound is populated.
type Fragment struct {
	Tag        string
	Line       string
	ClashProxy model.OMap
	Outbound   map[string]interface{}
}

// Encode renders one node for the target. A nil fragment means the node is
// not representable there; reason says why. Per policy a skip never fails
// the batch.
func Encode(target Target, in Input) (*Fragment, string) {
	cell, ok := capabilities[target][in.Node.Protocol]
	if !ok {
		return nil, fmt.Sprintf("协议 %s 不支持输出到 %s", in.Node.Protocol, target)
	}
	if cell.skipStreams != nil {
		if st := streamType(in.EP); cell.skipStreams[st] {
			return nil, fmt.Sprintf("%s 客户端不支持 %s 传输", target, st)
		}
	}
	frag := cell.encode(in)
	if frag == nil {
		return nil, "节点缺少必要参数"
	}
	frag.Tag = in.Tag
	return frag, ""
}
