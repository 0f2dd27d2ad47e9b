package schedule

import (
	"sync"
	"time"
)

// Handle 代表一个已调度的单次回调
type Handle interface {
	// Cancel 取消回调，可重复调用
	Cancel()
}

// Scheduler 延迟单次回调原语
type Scheduler interface {
	// After 在 d 之后调用 fn，返回可用于取消的句柄
	After(d time.Duration, fn func()) Handle
}

// Timer 基于 time.AfterFunc 的真实时钟调度器
type Timer struct{}

// NewTimer 创建真实时钟调度器
func NewTimer() *Timer { return &Timer{} }

func (t *Timer) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return &timerHandle{timer: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	once  sync.Once
	timer *time.Timer
}

func (h *timerHandle) Cancel() {
	h.once.Do(func() { h.timer.Stop() })
}

// Func 把普通函数适配为 Scheduler
type Func func(d time.Duration, fn func()) Handle

func (f Func) After(d time.Duration, fn func()) Handle { return f(d, fn) }
