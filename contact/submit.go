package contact

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"portfolio/schedule"
)

// SuccessMessage 发送成功后显示的提示
const SuccessMessage = "Thank you! Your message has been sent successfully."

// 保留的提交记录上限
const maxSubmissions = 256

// Status 模拟提交的阶段
type Status string

const (
	StatusSending Status = "sending" // 按钮显示 Sending... 并禁用
	StatusSent    Status = "sent"    // 显示成功提示，表单已重置
	StatusHidden  Status = "hidden"  // 成功提示已隐藏
)

// Submission 一次模拟提交
type Submission struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Form      Form      `json:"-"`
}

// SubmitTiming 模拟提交的时间参数
type SubmitTiming struct {
	Send    time.Duration // 模拟发送耗时
	ShowFor time.Duration // 成功提示显示时长
}

// DefaultSubmitTiming 返回默认时间参数
func DefaultSubmitTiming() SubmitTiming {
	return SubmitTiming{Send: 2000 * time.Millisecond, ShowFor: 5000 * time.Millisecond}
}

// Submitter 模拟表单提交，不会把内容发送到任何地方
type Submitter struct {
	scheduler schedule.Scheduler
	timing    SubmitTiming

	mutex       sync.Mutex
	submissions *lru.Cache[string, *Submission]
}

// NewSubmitter 创建模拟提交器
func NewSubmitter(scheduler schedule.Scheduler, timing SubmitTiming) *Submitter {
	if scheduler == nil {
		scheduler = schedule.NewTimer()
	}
	// 容量为正数时 lru.New 不会返回错误
	submissions, _ := lru.New[string, *Submission](maxSubmissions)
	return &Submitter{
		scheduler:   scheduler,
		timing:      timing,
		submissions: submissions,
	}
}

// Submit 校验表单并开始模拟提交，校验失败时返回 *ValidationError
func (s *Submitter) Submit(form Form) (Submission, error) {
	result := Validate(form)
	if !result.Valid {
		return Submission{}, &ValidationError{Result: result}
	}

	sub := &Submission{
		ID:        uuid.New().String(),
		Status:    StatusSending,
		CreatedAt: time.Now(),
		Form:      form,
	}

	s.mutex.Lock()
	s.submissions.Add(sub.ID, sub)
	snapshot := *sub
	s.mutex.Unlock()

	log.Printf("📨 联系表单 %s 开始模拟发送", sub.ID)
	s.scheduler.After(s.timing.Send, func() { s.markSent(sub) })
	return snapshot, nil
}

// Get 查询提交状态
func (s *Submitter) Get(id string) (Submission, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sub, ok := s.submissions.Get(id)
	if !ok {
		return Submission{}, false
	}
	return *sub, true
}

func (s *Submitter) markSent(sub *Submission) {
	s.mutex.Lock()
	sub.Status = StatusSent
	sub.Message = SuccessMessage
	sub.Form = Form{}
	s.mutex.Unlock()

	log.Printf("✅ 联系表单 %s 模拟发送完成", sub.ID)
	s.scheduler.After(s.timing.ShowFor, func() { s.markHidden(sub) })
}

func (s *Submitter) markHidden(sub *Submission) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	sub.Status = StatusHidden
	sub.Message = ""
}
