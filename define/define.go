package define

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"portfolio/contact"
	"portfolio/project"
	"portfolio/typing"
)

// 配置结构体
type Config struct {
	Server   ServerConfig      `koanf:"server" yaml:"server"`
	Typing   TypingConfig      `koanf:"typing" yaml:"typing"`
	Contact  ContactConfig     `koanf:"contact" yaml:"contact"`
	Theme    ThemeConfig       `koanf:"theme" yaml:"theme"`
	Projects []project.Project `koanf:"projects" yaml:"projects,omitempty"` // 追加到内置项目之后，同名覆盖
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host         string   `koanf:"host" yaml:"host"`
	Port         int      `koanf:"port" yaml:"port"`
	Mode         string   `koanf:"mode" yaml:"mode"` // gin 运行模式：debug, release, test
	EnableCORS   bool     `koanf:"enable_cors" yaml:"enable_cors"`
	AllowOrigins []string `koanf:"allow_origins" yaml:"allow_origins"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// TypingConfig 打字效果配置，时间单位为毫秒
type TypingConfig struct {
	AutoStart   string              `koanf:"auto_start" yaml:"auto_start"` // 服务启动时播放的文案集，留空不播放
	InitialMS   int                 `koanf:"initial_ms" yaml:"initial_ms"`
	RevealMS    int                 `koanf:"reveal_ms" yaml:"reveal_ms"`
	DeleteMS    int                 `koanf:"delete_ms" yaml:"delete_ms"`
	HoldFullMS  int                 `koanf:"hold_full_ms" yaml:"hold_full_ms"`
	HoldEmptyMS int                 `koanf:"hold_empty_ms" yaml:"hold_empty_ms"`
	Sets        []typing.CaptionSet `koanf:"sets" yaml:"sets"`
}

// Timing 转换为动画节奏
func (t TypingConfig) Timing() typing.Timing {
	return typing.Timing{
		Initial:   ms(t.InitialMS),
		Reveal:    ms(t.RevealMS),
		Delete:    ms(t.DeleteMS),
		HoldFull:  ms(t.HoldFullMS),
		HoldEmpty: ms(t.HoldEmptyMS),
	}
}

// ContactConfig 联系表单模拟提交配置
type ContactConfig struct {
	SendMS    int `koanf:"send_ms" yaml:"send_ms"`
	ShowForMS int `koanf:"show_for_ms" yaml:"show_for_ms"`
}

func (c ContactConfig) SubmitTiming() contact.SubmitTiming {
	return contact.SubmitTiming{Send: ms(c.SendMS), ShowFor: ms(c.ShowForMS)}
}

// 主题偏好存储方式
const (
	ThemeStoreMemory = "memory"
	ThemeStoreSQLite = "sqlite"
)

// ThemeConfig 主题偏好存储配置
type ThemeConfig struct {
	Store  string `koanf:"store" yaml:"store"`
	DBPath string `koanf:"db_path" yaml:"db_path"`
}

func (c ThemeConfig) String() string {
	if c.Store == ThemeStoreSQLite {
		return fmt.Sprintf("%s (%s)", c.Store, c.DBPath)
	}
	return c.Store
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// API 响应结构体
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}
