package typing

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"portfolio/schedule"
)

// Sink 接收打字效果的当前文本，每次调用都整体替换显示内容
type Sink interface {
	SetText(text string) error
}

// SinkFunc 把普通函数适配为 Sink
type SinkFunc func(text string) error

func (f SinkFunc) SetText(text string) error { return f(text) }

// Option 动画器配置项
type Option func(*Animator)

// WithScheduler 指定调度器，默认使用真实时钟
func WithScheduler(s schedule.Scheduler) Option {
	return func(a *Animator) { a.scheduler = s }
}

// WithTiming 指定节奏参数
func WithTiming(t Timing) Option {
	return func(a *Animator) { a.timing = t }
}

// WithName 指定日志中使用的名称
func WithName(name string) Option {
	return func(a *Animator) { a.name = name }
}

// WithMetrics 指定指标收集器
func WithMetrics(m *Metrics) Option {
	return func(a *Animator) { a.metrics = m }
}

// Animator 打字效果动画器。
// 同一时刻最多只有一个待执行的 tick，取消后不会再写入 Sink。
// Sink 在动画器锁内被调用，Sink 实现不能回调 Animator。
type Animator struct {
	name      string
	captions  []string
	sink      Sink
	scheduler schedule.Scheduler
	timing    Timing
	metrics   *Metrics

	mutex      sync.Mutex
	state      *State
	pending    schedule.Handle
	generation uint64 // 每次调度或取消都会递增，过期回调据此失效
	handle     *Handle
	stopped    bool
}

// Handle 一次运行的取消句柄
type Handle struct {
	animator *Animator
	done     chan struct{}
	err      error
}

// New 创建动画器，文案列表非法时返回 ErrInvalidCaption
func New(captions []string, sink Sink, opts ...Option) (*Animator, error) {
	if err := ValidateCaptions(captions); err != nil {
		return nil, err
	}

	a := &Animator{
		name:      "typing",
		captions:  slices.Clone(captions),
		sink:      sink,
		scheduler: schedule.NewTimer(),
		timing:    DefaultTiming(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start 初始化状态并在初始延迟后调度第一次 tick
func (a *Animator) Start() (*Handle, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.handle != nil {
		return nil, ErrAlreadyStarted
	}

	state, err := NewState(a.captions, a.timing)
	if err != nil {
		return nil, err
	}

	a.state = state
	a.handle = &Handle{animator: a, done: make(chan struct{})}
	a.scheduleLocked(a.timing.Initial)
	a.metrics.started()

	log.Printf("🚀 打字效果 %s 已启动 (%d 条文案，首次延迟 %v)", a.name, len(a.captions), a.timing.Initial)
	return a.handle, nil
}

// Cancel 停止后续所有 tick。可重复调用，未启动时调用无副作用。
func (a *Animator) Cancel() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.handle == nil || a.stopped {
		return
	}
	a.finishLocked(nil)
	log.Printf("🛑 打字效果 %s 已取消", a.name)
}

// Snapshot 返回当前状态，未运行时第二个返回值为 false
func (a *Animator) Snapshot() (Snapshot, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.state == nil {
		return Snapshot{}, false
	}
	return a.state.Snapshot(), true
}

func (a *Animator) scheduleLocked(delay time.Duration) {
	a.generation++
	gen := a.generation
	a.pending = a.scheduler.After(delay, func() { a.tick(gen) })
}

func (a *Animator) tick(gen uint64) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	// 已取消或已被新的调度取代
	if a.stopped || gen != a.generation {
		return
	}
	a.pending = nil

	mode := a.state.Mode()
	text, delay := a.state.Step()

	if err := a.sink.SetText(text); err != nil {
		log.Printf("❌ 打字效果 %s 写入显示失败: %v", a.name, err)
		a.metrics.sinkFailed()
		a.finishLocked(fmt.Errorf("写入显示失败：%w", err))
		return
	}

	a.metrics.ticked(mode)
	if mode == Deleting && a.state.Mode() == Revealing {
		a.metrics.cycled()
	}

	a.scheduleLocked(delay)
}

func (a *Animator) finishLocked(err error) {
	a.stopped = true
	a.generation++
	if a.pending != nil {
		a.pending.Cancel()
		a.pending = nil
	}
	a.state = nil
	a.handle.err = err
	close(a.handle.done)
	a.metrics.stopped()
}

// Cancel 等价于 Animator.Cancel，nil 句柄上调用无副作用
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.animator.Cancel()
}

// Done 在运行结束（取消或出错）时关闭
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err 返回导致运行终止的错误，正常取消时为 nil
func (h *Handle) Err() error {
	h.animator.mutex.Lock()
	defer h.animator.mutex.Unlock()
	return h.err
}
