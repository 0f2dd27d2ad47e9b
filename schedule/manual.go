package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual 是一个手动推进的调度器，回调只在 Advance 中按到期顺序同步执行。
// 主要用于测试和按帧驱动的场景。
type Manual struct {
	mutex sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	owner     *Manual
}

// NewManual 创建一个时间起点为 0 的手动调度器
func NewManual() *Manual { return &Manual{} }

func (m *Manual) After(d time.Duration, fn func()) Handle {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	task := &manualTask{due: m.now + d, seq: m.seq, fn: fn, owner: m}
	m.tasks = append(m.tasks, task)
	return task
}

func (t *manualTask) Cancel() {
	t.owner.mutex.Lock()
	defer t.owner.mutex.Unlock()
	t.cancelled = true
}

// Now 返回自创建以来经过的虚拟时间
func (m *Manual) Now() time.Duration {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.now
}

// Pending 返回尚未执行且未取消的回调数量
func (m *Manual) Pending() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// NextDue 返回距离下一个回调到期的时间，没有待执行回调时返回 false
func (m *Manual) NextDue() (time.Duration, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.compact()
	if len(m.tasks) == 0 {
		return 0, false
	}
	return m.tasks[0].due - m.now, true
}

// Advance 把虚拟时间推进 d，并执行期间到期的所有回调（包括回调中新调度的）
func (m *Manual) Advance(d time.Duration) {
	m.mutex.Lock()
	target := m.now + d
	m.mutex.Unlock()

	for {
		m.mutex.Lock()
		m.compact()
		if len(m.tasks) == 0 || m.tasks[0].due > target {
			m.now = target
			m.mutex.Unlock()
			return
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.now = task.due
		m.mutex.Unlock()

		// 在锁外执行，回调内部可以再次调用 After
		task.fn()
	}
}

// Step 推进到下一个回调到期并执行它，没有待执行回调时返回 false
func (m *Manual) Step() bool {
	d, ok := m.NextDue()
	if !ok {
		return false
	}
	m.Advance(d)
	return true
}

// compact 清除已取消的任务并按到期时间排序，调用方必须持有锁
func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	sort.Slice(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
}
