package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidMode 无法识别的主题
var ErrInvalidMode = errors.New("无效的主题")

// Mode 页面主题
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Default 没有保存偏好时使用深色主题
const Default = Dark

// ParseMode 解析主题字符串，忽略大小写和首尾空白
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dark":
		return Dark, true
	case "light":
		return Light, true
	default:
	}
	return "", false
}

// Toggle 返回切换后的主题
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Icon 切换按钮上显示的图标
func (m Mode) Icon() string {
	if m == Light {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// BodyClass 浅色主题下 body 需要附加的 class
func (m Mode) BodyClass() string {
	if m == Light {
		return "light-mode"
	}
	return ""
}

// Preference 页面渲染主题所需的全部信息
type Preference struct {
	Mode      Mode   `json:"mode"`
	Icon      string `json:"icon"`
	BodyClass string `json:"bodyClass"`
}

func (m Mode) Preference() Preference {
	return Preference{Mode: m, Icon: m.Icon(), BodyClass: m.BodyClass()}
}

// Store 按访客保存唯一的主题偏好
type Store interface {
	// Get 返回访客的主题，没有记录时返回 Default
	Get(ctx context.Context, visitorID string) (Mode, error)
	// Set 保存访客的主题
	Set(ctx context.Context, visitorID string, mode Mode) error
}

// Toggle 切换并保存访客的主题
func Toggle(ctx context.Context, store Store, visitorID string) (Mode, error) {
	current, err := store.Get(ctx, visitorID)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := store.Set(ctx, visitorID, next); err != nil {
		return "", err
	}
	return next, nil
}

// MemoryStore 进程内存中的主题存储
type MemoryStore struct {
	mutex sync.RWMutex
	modes map[string]Mode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{modes: make(map[string]Mode)}
}

func (s *MemoryStore) Get(_ context.Context, visitorID string) (Mode, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if mode, ok := s.modes[visitorID]; ok {
		return mode, nil
	}
	return Default, nil
}

func (s *MemoryStore) Set(_ context.Context, visitorID string, mode Mode) error {
	if _, ok := ParseMode(string(mode)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.modes[visitorID] = mode
	return nil
}
