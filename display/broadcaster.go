package display

import (
	"sync"
	"time"
)

// defaultSubscriberBuffer 每个订阅者的默认缓冲帧数
const defaultSubscriberBuffer = 8

// Frame 一次显示更新
type Frame struct {
	Seq  uint64    `json:"seq"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Broadcaster 保存最新文本并分发给所有订阅者。
// 订阅者消费过慢时丢弃最旧的帧，最新文本始终可以通过 Last 取得。
type Broadcaster struct {
	mutex  sync.RWMutex
	last   Frame
	subs   map[chan Frame]struct{}
	buffer int
}

// NewBroadcaster 创建分发器，buffer <= 0 时使用默认值
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Broadcaster{
		subs:   make(map[chan Frame]struct{}),
		buffer: buffer,
	}
}

// SetText 实现 typing.Sink
func (b *Broadcaster) SetText(text string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.last = Frame{Seq: b.last.Seq + 1, Text: text, At: time.Now()}
	for ch := range b.subs {
		offer(ch, b.last)
	}
	return nil
}

// offer 非阻塞发送，通道已满时丢弃最旧的一帧
func offer(ch chan Frame, frame Frame) {
	select {
	case ch <- frame:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}

// Last 返回最新一帧
func (b *Broadcaster) Last() Frame {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.last
}

// Subscribe 订阅后续帧。返回的函数用于取消订阅，会关闭通道，可重复调用。
func (b *Broadcaster) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, b.buffer)

	b.mutex.Lock()
	b.subs[ch] = struct{}{}
	b.mutex.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mutex.Lock()
			defer b.mutex.Unlock()
			delete(b.subs, ch)
			close(ch)
		})
	}
}

// Subscribers 返回当前订阅者数量
func (b *Broadcaster) Subscribers() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.subs)
}
