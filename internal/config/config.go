// Package config wires flags, environment and an optional config file into
// a single viper instance.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nodepanel/subcodec/internal/logging"
)

// Config is the single viper instance of the process.
var Config *viper.Viper

// Load parses flags and the optional config file. Called once from main.
func Load() *viper.Viper {
	Config = viper.New()

	pflag.String("config", "", "配置文件路径（可选）")
	pflag.String("user", "user.json", "用户记录 JSON 文件")
	pflag.String("nodes", "nodes.json", "节点列表 JSON 文件")
	pflag.String("target", "v2ray", "输出格式：v2ray|clash|quantumultx|shadowrocket|surge|singbox")
	pflag.String("output", "", "输出文件路径；\"-\" 表示标准输出，留空按格式扩展名生成")
	pflag.String("template.clash", "", "替换内置 Clash 基础模板的文件路径")
	pflag.String("template.singbox", "", "替换内置 sing-box 基础模板的文件路径")
	pflag.String("log.level", "info", "日志级别")
	pflag.Parse()
	Config.BindPFlags(pflag.CommandLine)

	Config.SetEnvPrefix("SUBCODEC")
	Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Config.AutomaticEnv()

	if file := Config.GetString("config"); file != "" {
		Config.SetConfigFile(file)
		if err := Config.ReadInConfig(); err != nil {
			logging.Log.WithError(err).Fatal("读取配置文件失败")
		}
	}
	return Config
}
