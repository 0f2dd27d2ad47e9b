package typing

import (
	"fmt"
	"log"
	"slices"
	"sort"
	"sync"

	"portfolio/schedule"
)

// CaptionSet 一组具名的轮播文案
type CaptionSet struct {
	Name     string   `json:"name" yaml:"name" koanf:"name"`
	Captions []string `json:"captions" yaml:"captions" koanf:"captions"`
}

// Status 引擎状态
type Status struct {
	IsRunning  bool      `json:"isRunning"`
	Current    string    `json:"current,omitempty"`
	Registered []string  `json:"registered"`
	State      *Snapshot `json:"state,omitempty"`
}

// Engine 管理文案集，并把至多一个正在运行的动画器输出到同一个 Sink
type Engine struct {
	sink      Sink
	scheduler schedule.Scheduler
	timing    Timing
	metrics   *Metrics

	sets          map[string]CaptionSet // 注册的文案集
	animator      *Animator             // 当前运行的动画器
	current       string                // 当前运行的文案集名称
	engineMutex   sync.Mutex            // 保护 animator, current
	registerMutex sync.RWMutex          // 保护 sets
}

// NewEngine 创建引擎
func NewEngine(sink Sink, scheduler schedule.Scheduler, timing Timing, metrics *Metrics) *Engine {
	if scheduler == nil {
		scheduler = schedule.NewTimer()
	}
	return &Engine{
		sink:      sink,
		scheduler: scheduler,
		timing:    timing,
		metrics:   metrics,
		sets:      make(map[string]CaptionSet),
	}
}

// Register 注册一个文案集，同名文案集会被覆盖
func (e *Engine) Register(set CaptionSet) error {
	if set.Name == "" {
		return fmt.Errorf("%w: 文案集名称为空", ErrInvalidCaption)
	}
	if err := ValidateCaptions(set.Captions); err != nil {
		return fmt.Errorf("文案集 %s: %w", set.Name, err)
	}

	e.registerMutex.Lock()
	defer e.registerMutex.Unlock()

	if _, exists := e.sets[set.Name]; exists {
		log.Printf("⚠️ 文案集 %s 已注册，将被覆盖", set.Name)
	}
	e.sets[set.Name] = CaptionSet{Name: set.Name, Captions: slices.Clone(set.Captions)}
	log.Printf("✅ 文案集 %s 已注册 (%d 条)", set.Name, len(set.Captions))
	return nil
}

func (e *Engine) getSet(name string) (CaptionSet, bool) {
	e.registerMutex.RLock()
	defer e.registerMutex.RUnlock()
	set, exists := e.sets[name]
	return set, exists
}

// Start 启动指定文案集，已有动画在运行时先取消它
func (e *Engine) Start(name string) error {
	set, exists := e.getSet(name)
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSet, name)
	}

	e.engineMutex.Lock()
	defer e.engineMutex.Unlock()

	if e.animator != nil {
		log.Printf("ℹ️ 正在停止当前文案集 %s 以启动 %s...", e.current, name)
		e.animator.Cancel()
	}

	animator, err := New(set.Captions, e.sink,
		WithScheduler(e.scheduler),
		WithTiming(e.timing),
		WithName(name),
		WithMetrics(e.metrics),
	)
	if err != nil {
		return err
	}
	handle, err := animator.Start()
	if err != nil {
		return err
	}

	e.animator = animator
	e.current = name
	go e.watch(animator, handle)
	return nil
}

// Stop 停止当前运行的动画
func (e *Engine) Stop() error {
	e.engineMutex.Lock()
	defer e.engineMutex.Unlock()

	if e.animator == nil {
		log.Printf("ℹ️ 当前没有打字效果在运行")
		return nil
	}

	e.animator.Cancel()
	e.animator = nil
	e.current = ""
	return nil
}

// IsRunning 检查是否有动画在运行
func (e *Engine) IsRunning() bool {
	e.engineMutex.Lock()
	defer e.engineMutex.Unlock()
	return e.animator != nil
}

// Current 返回当前运行的文案集名称
func (e *Engine) Current() string {
	e.engineMutex.Lock()
	defer e.engineMutex.Unlock()
	return e.current
}

// Registered 返回已注册的文案集名称（已排序）
func (e *Engine) Registered() []string {
	e.registerMutex.RLock()
	defer e.registerMutex.RUnlock()

	names := make([]string, 0, len(e.sets))
	for name := range e.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set 返回已注册的文案集
func (e *Engine) Set(name string) (CaptionSet, bool) {
	set, ok := e.getSet(name)
	if !ok {
		return CaptionSet{}, false
	}
	set.Captions = slices.Clone(set.Captions)
	return set, true
}

// Status 返回引擎状态
func (e *Engine) Status() Status {
	status := Status{Registered: e.Registered()}

	e.engineMutex.Lock()
	animator := e.animator
	status.Current = e.current
	e.engineMutex.Unlock()

	status.IsRunning = animator != nil
	if animator != nil {
		if snap, ok := animator.Snapshot(); ok {
			status.State = &snap
		}
	}
	return status
}

// watch 在动画器结束后清理引擎状态。
// 只有仍是当前动画器时才清理，否则说明新的文案集已经接管。
func (e *Engine) watch(animator *Animator, handle *Handle) {
	<-handle.Done()

	e.engineMutex.Lock()
	defer e.engineMutex.Unlock()

	if e.animator != animator {
		return
	}
	e.animator = nil
	if err := handle.Err(); err != nil {
		log.Printf("👋 文案集 %s 因错误结束: %v", e.current, err)
	} else {
		log.Printf("👋 文案集 %s 已结束", e.current)
	}
	e.current = ""
}
