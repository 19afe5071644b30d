package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/nodepanel/subcodec/internal/config"
	"github.com/nodepanel/subcodec/internal/logging"
	"github.com/nodepanel/subcodec/internal/model"
	"github.com/nodepanel/subcodec/internal/render"
	"github.com/nodepanel/subcodec/internal/subscription"
	"github.com/nodepanel/subcodec/internal/template"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.GetString("log.level"))

	target, err := render.ParseTarget(cfg.GetString("target"))
	if err != nil {
		logging.Log.WithError(err).Fatal("无效的输出格式")
	}

	if err := applyTemplateOverrides(cfg.GetString("template.clash"), cfg.GetString("template.singbox")); err != nil {
		logging.Log.WithError(err).Fatal("加载模板覆盖失败")
	}

	user, err := loadUser(cfg.GetString("user"))
	if err != nil {
		logging.Log.WithError(err).Fatal("读取用户记录失败")
	}
	nodes, err := loadNodes(cfg.GetString("nodes"))
	if err != nil {
		logging.Log.WithError(err).Fatal("读取节点列表失败")
	}

	body, skips, err := subscription.Generate(user, nodes, target)
	for _, s := range skips {
		logging.Log.WithFields(map[string]interface{}{
			"node":   s.Name,
			"id":     s.NodeID,
			"reason": s.Reason,
		}).Debug("节点被跳过")
	}
	if err != nil {
		logging.Log.WithError(err).Fatal("生成订阅失败")
	}

	out := cfg.GetString("output")
	if out == "-" {
		fmt.Print(string(body.Content))
		return
	}
	if out == "" {
		out = "subscription" + body.Extension
	}
	if err := os.WriteFile(out, body.Content, 0o644); err != nil {
		logging.Log.WithError(err).Fatal("写入输出文件失败")
	}
	logging.Log.WithFields(map[string]interface{}{
		"file":    out,
		"target":  string(target),
		"skipped": len(skips),
	}).Info("订阅已生成")
}

func applyTemplateOverrides(clashPath, singboxPath string) error {
	if clashPath != "" {
		raw, err := os.ReadFile(clashPath)
		if err != nil {
			return err
		}
		if err := template.OverrideClashBase(raw); err != nil {
			return err
		}
	}
	if singboxPath != "" {
		raw, err := os.ReadFile(singboxPath)
		if err != nil {
			return err
		}
		if err := template.OverrideSingboxBase(raw); err != nil {
			return err
		}
	}
	return nil
}

var validate = validator.New()

func loadUser(path string) (model.SubscriptionUser, error) {
	var user model.SubscriptionUser
	raw, err := os.ReadFile(path)
	if err != nil {
		return user, err
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return user, err
	}
	if err := validate.Struct(user); err != nil {
		return user, err
	}
	return user, nil
}

// loadNodes drops records that fail validation instead of aborting; one bad
// node must not break the batch.
func loadNodes(path string) ([]model.ProxyNode, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nodes []model.ProxyNode
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, err
	}
	out := nodes[:0]
	for _, n := range nodes {
		if err := validate.Struct(n); err != nil {
			logging.Log.WithError(err).WithField("node", n.Name).Warn("节点记录无效，已忽略")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
