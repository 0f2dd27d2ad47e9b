package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"portfolio/define"
	"portfolio/typing"
)

// EnvPrefix 环境变量前缀，层级用双下划线分隔，例如 PORTFOLIO_SERVER__PORT
const EnvPrefix = "PORTFOLIO_"

// DefaultPath 默认配置文件
const DefaultPath = "portfolio.yml"

var Config *define.Config

// DefaultConfig 获取默认配置
func DefaultConfig() *define.Config {
	return &define.Config{
		Server: define.ServerConfig{
			Host:         "0.0.0.0",
			Port:         9099,
			Mode:         "release",
			EnableCORS:   true,
			AllowOrigins: []string{"*"},
		},
		Typing: define.TypingConfig{
			AutoStart:   typing.DefaultSetName,
			InitialMS:   1000,
			RevealMS:    100,
			DeleteMS:    50,
			HoldFullMS:  2000,
			HoldEmptyMS: 500,
			Sets:        typing.DefaultCaptionSets(),
		},
		Contact: define.ContactConfig{
			SendMS:    2000,
			ShowForMS: 5000,
		},
		Theme: define.ThemeConfig{
			Store:  define.ThemeStoreMemory,
			DBPath: "data/portfolio.db",
		},
	}
}

// Load 在默认配置之上依次叠加 YAML 文件（不存在时跳过）和 PORTFOLIO_* 环境变量
func Load(path string) (*define.Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("读取配置文件 %s 失败：%w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("访问配置文件 %s 失败：%w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败：%w", err)
	}

	// 列表整体替换默认值，不按下标合并
	if k.Exists("server.allow_origins") {
		cfg.Server.AllowOrigins = nil
	}
	if k.Exists("typing.sets") {
		cfg.Typing.Sets = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败：%w", err)
	}
	return cfg, nil
}

// PORTFOLIO_TYPING__REVEAL_MS -> typing.reveal_ms
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save 保存配置到 YAML 文件
func Save(cfg *define.Config, path string) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败：%w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("保存配置文件 %s 失败：%w", path, err)
	}
	return nil
}

// Validate 检查配置是否可用
func Validate(cfg *define.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的端口 %d", cfg.Server.Port)
	}
	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("无效的运行模式 %q：可选 debug, release, test", cfg.Server.Mode)
	}

	t := cfg.Typing
	if t.InitialMS < 0 {
		return fmt.Errorf("typing.initial_ms 不能为负数")
	}
	for name, v := range map[string]int{
		"reveal_ms":     t.RevealMS,
		"delete_ms":     t.DeleteMS,
		"hold_full_ms":  t.HoldFullMS,
		"hold_empty_ms": t.HoldEmptyMS,
	} {
		if v <= 0 {
			return fmt.Errorf("typing.%s 必须为正数", name)
		}
	}

	names := make(map[string]bool, len(t.Sets))
	for _, set := range t.Sets {
		if set.Name == "" {
			return fmt.Errorf("文案集名称不能为空")
		}
		if err := typing.ValidateCaptions(set.Captions); err != nil {
			return fmt.Errorf("文案集 %s：%w", set.Name, err)
		}
		names[set.Name] = true
	}
	if t.AutoStart != "" && !names[t.AutoStart] {
		return fmt.Errorf("%w: %s", typing.ErrUnknownSet, t.AutoStart)
	}

	if cfg.Contact.SendMS < 0 || cfg.Contact.ShowForMS < 0 {
		return fmt.Errorf("contact 时间参数不能为负数")
	}

	switch cfg.Theme.Store {
	case define.ThemeStoreMemory:
	case define.ThemeStoreSQLite:
		if cfg.Theme.DBPath == "" {
			return fmt.Errorf("theme.db_path 不能为空")
		}
	default:
		return fmt.Errorf("无效的主题存储 %q：可选 memory, sqlite", cfg.Theme.Store)
	}

	for _, p := range cfg.Projects {
		if p.Key == "" || p.Title == "" {
			return fmt.Errorf("项目缺少 key 或 title")
		}
	}
	return nil
}
