package project

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotFound 项目不存在
var ErrNotFound = errors.New("项目不存在")

// Project 项目详情浮层展示的数据
type Project struct {
	Key         string   `json:"key" yaml:"key" koanf:"key"`
	Title       string   `json:"title" yaml:"title" koanf:"title"`
	Tech        []string `json:"tech" yaml:"tech" koanf:"tech"`
	Description string   `json:"description" yaml:"description" koanf:"description"` // Markdown
	Features    []string `json:"features" yaml:"features" koanf:"features"`
	GitHub      string   `json:"github" yaml:"github" koanf:"github"`
	Demo        string   `json:"demo" yaml:"demo" koanf:"demo"`
}

// HasDemo 演示地址为空或为 "#" 时不显示演示按钮
func (p Project) HasDemo() bool { return p.Demo != "" && p.Demo != "#" }

// Catalog 项目目录，按注册顺序保存
type Catalog struct {
	mutex    sync.RWMutex
	projects map[string]Project
	order    []string
}

// NewCatalog 创建空目录
func NewCatalog() *Catalog {
	return &Catalog{projects: make(map[string]Project)}
}

// NewDefaultCatalog 创建包含内置项目的目录
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, p := range DefaultProjects() {
		_ = c.Register(p)
	}
	return c
}

// Register 注册一个项目，同 key 的项目会被替换但保留原有顺序
func (c *Catalog) Register(p Project) error {
	if p.Key == "" {
		return errors.New("项目 key 不能为空")
	}
	if p.Title == "" {
		return fmt.Errorf("项目 %s 缺少标题", p.Key)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.projects[p.Key]; !exists {
		c.order = append(c.order, p.Key)
	}
	p.Tech = slices.Clone(p.Tech)
	p.Features = slices.Clone(p.Features)
	c.projects[p.Key] = p
	return nil
}

// Get 按 key 查找项目
func (c *Catalog) Get(key string) (Project, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p, exists := c.projects[key]
	if !exists {
		return Project{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return p, nil
}

// Keys 返回所有项目 key
func (c *Catalog) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return slices.Clone(c.order)
}

// List 按注册顺序返回所有项目
func (c *Catalog) List() []Project {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	projects := make([]Project, 0, len(c.order))
	for _, key := range c.order {
		projects = append(projects, c.projects[key])
	}
	return projects
}

// Len 返回项目数量
func (c *Catalog) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.order)
}
