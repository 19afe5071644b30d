// Package subscription assembles whole-user subscription bodies: it filters
// the node set, renders one fragment per node and target, and merges the
// fragments into the final payload.
package subscription

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/nodepanel/subcodec/internal/derive"
	"github.com/nodepanel/subcodec/internal/endpoint"
	"github.com/nodepanel/subcodec/internal/logging"
	"github.com/nodepanel/subcodec/internal/model"
	"github.com/nodepanel/subcodec/internal/region"
	"github.com/nodepanel/subcodec/internal/render"
	"github.com/nodepanel/subcodec/internal/template"
)

// Body is the generated subscription payload plus the transport hints the
// serving layer needs.
type Body struct {
	Content     []byte
	ContentType string
	Extension   string
}

// Skip records one node left out of the output and why. Skips never fail
// the batch; they are returned for logging or debug endpoints.
type Skip struct {
	NodeID int64
	Name   string
	Reason string
}

// Options carries per-call knobs. IntN pins the Reality short-id pick in
// tests; nil means math/rand.
type Options struct {
	IntN derive.IntN
}

type GenerateError struct {
	AppError model.AppError
	Cause    error
}

func (e *GenerateError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *GenerateError) Unwrap() error { return e.Cause }

// Generate renders the subscription body for one user and target.
func Generate(user model.SubscriptionUser, nodes []model.ProxyNode, target render.Target) (*Body, []Skip, error) {
	return GenerateWith(user, nodes, target, Options{})
}

func GenerateWith(user model.SubscriptionUser, nodes []model.ProxyNode, target render.Target, opts Options) (*Body, []Skip, error) {
	var (
		skips     []Skip
		lines     []string
		proxies   []model.OMap
		outbounds []map[string]interface{}
		tags      []string
		byRegion  = map[string][]string{}
		usedTags  = map[string]int{}
	)

	skip := func(n model.ProxyNode, reason string) {
		skips = append(skips, Skip{NodeID: n.ID, Name: n.Name, Reason: reason})
		logging.Log.WithFields(map[string]interface{}{
			"node":   n.Name,
			"target": string(target),
		}).Warn(reason)
	}

	for _, n := range nodes {
		if !n.Active {
			skip(n, "节点已停用")
			continue
		}
		if n.AccessClass > user.Class {
			skip(n, "用户等级不足")
			continue
		}
		if !model.KnownProtocol(n.Protocol) {
			skip(n, fmt.Sprintf("未知协议 %s", n.Protocol))
			continue
		}

		tag := n.Name
		if target == render.TargetSingbox {
			tag = uniqueTag(n.Name, usedTags)
		}
		frag, reason := render.Encode(target, render.Input{
			Node: n,
			User: user,
			EP:   endpoint.Resolve(n),
			Tag:  tag,
			IntN: opts.IntN,
		})
		if frag == nil {
			skip(n, reason)
			continue
		}

		switch {
		case frag.ClashProxy != nil:
			proxies = append(proxies, frag.ClashProxy)
			tags = append(tags, frag.Tag)
		case frag.Outbound != nil:
			outbounds = append(outbounds, frag.Outbound)
			tags = append(tags, frag.Tag)
			for _, rt := range region.Classify(n.Name) {
				byRegion[rt] = append(byRegion[rt], frag.Tag)
			}
		default:
			lines = append(lines, frag.Line)
			tags = append(tags, frag.Tag)
		}
	}

	if len(tags) == 0 {
		return nil, skips, &GenerateError{
			AppError: model.AppError{
				Code:    model.CodeNoUsableNodes,
				Message: "没有可用节点",
				Stage:   "generate",
				Hint:    string(target),
			},
		}
	}

	body, err := assemble(target, lines, proxies, outbounds, tags, byRegion)
	if err != nil {
		return nil, skips, err
	}
	return body, skips, nil
}

func assemble(target render.Target, lines []string, proxies []model.OMap, outbounds []map[string]interface{}, tags []string, byRegion map[string][]string) (*Body, error) {
	switch target {
	case render.TargetV2ray:
		block := base64.StdEncoding.EncodeToString([]byte(strings.Join(lines, "\n")))
		return &Body{Content: []byte(block), ContentType: "text/plain; charset=utf-8", Extension: ".txt"}, nil

	case render.TargetQuantumultX, render.TargetShadowrocket:
		return &Body{Content: []byte(strings.Join(lines, "\n")), ContentType: "text/plain; charset=utf-8", Extension: ".txt"}, nil

	case render.TargetSurge:
		return &Body{Content: []byte(surgeConfig(lines, tags)), ContentType: "text/plain; charset=utf-8", Extension: ".conf"}, nil

	case render.TargetClash:
		out, err := template.MergeClash(proxies, tags)
		if err != nil {
			return nil, err
		}
		return &Body{Content: []byte(out), ContentType: "text/yaml; charset=utf-8", Extension: ".yaml"}, nil

	case render.TargetSingbox:
		out, err := template.MergeSingbox(outbounds, tags, byRegion)
		if err != nil {
			return nil, err
		}
		return &Body{Content: []byte(out), ContentType: "application/json; charset=utf-8", Extension: ".json"}, nil
	}
	return nil, &GenerateError{
		AppError: model.AppError{
			Code:    model.CodeUnsupportedTarget,
			Message: fmt.Sprintf("不支持的 target：%s", target),
			Stage:   "generate",
		},
	}
}

// surgeConfig wraps the proxy lines in a minimal complete config so Surge
// accepts the file directly.
func surgeConfig(lines, tags []string) string {
	var b strings.Builder
	b.WriteString("[Proxy]\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n[Proxy Group]\n")
	b.WriteString("🚀 节点选择 = select")
	for _, t := range tags {
		b.WriteString(", " + t)
	}
	b.WriteString(", DIRECT\n")
	b.WriteString("\n[Rule]\nFINAL,🚀 节点选择\n")
	return b.String()
}

// uniqueTag disambiguates duplicate display names: base, base-2, base-3, ...
func uniqueTag(base string, used map[string]int) string {
	if base == "" {
		base = "node"
	}
	if _, ok := used[base]; !ok {
		used[base] = 1
		return base
	}
	used[base]++
	return fmt.Sprintf("%s-%d", base, used[base])
}
