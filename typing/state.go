package typing

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCaption 文案列表为空或包含空文案
	ErrInvalidCaption = errors.New("无效的文案")
	// ErrAlreadyStarted 动画器只能启动一次
	ErrAlreadyStarted = errors.New("动画器已启动")
	// ErrUnknownSet 文案集未注册
	ErrUnknownSet = errors.New("文案集未注册")
)

// Mode 打字效果所处的阶段
type Mode int

const (
	Revealing Mode = iota // 逐字显示
	Deleting              // 逐字删除
)

func (m Mode) String() string {
	if m == Deleting {
		return "deleting"
	}
	return "revealing"
}

// Timing 打字效果的节奏参数，对所有文案统一生效
type Timing struct {
	Initial   time.Duration // 首次显示前的等待
	Reveal    time.Duration // 显示一个字符后的间隔
	Delete    time.Duration // 删除一个字符后的间隔
	HoldFull  time.Duration // 文案完整显示后的停顿
	HoldEmpty time.Duration // 文案删除完毕、切换下一条前的停顿
}

// DefaultTiming 返回默认节奏
func DefaultTiming() Timing {
	return Timing{
		Initial:   1000 * time.Millisecond,
		Reveal:    100 * time.Millisecond,
		Delete:    50 * time.Millisecond,
		HoldFull:  2000 * time.Millisecond,
		HoldEmpty: 500 * time.Millisecond,
	}
}

// ValidateCaptions 检查文案列表是否可用
func ValidateCaptions(captions []string) error {
	if len(captions) == 0 {
		return fmt.Errorf("%w: 文案列表为空", ErrInvalidCaption)
	}
	for i, c := range captions {
		if c == "" {
			return fmt.Errorf("%w: 第 %d 条文案为空", ErrInvalidCaption, i)
		}
	}
	return nil
}

// Snapshot 状态机在某一时刻的只读视图
type Snapshot struct {
	CaptionIndex int    `json:"captionIndex"`
	CharIndex    int    `json:"charIndex"`
	Mode         string `json:"mode"`
	Caption      string `json:"caption"`
	Text         string `json:"text"`
}

// State 打字效果的状态机。字符位置按 rune 计算。
type State struct {
	captions     [][]rune
	timing       Timing
	captionIndex int
	charIndex    int
	mode         Mode
}

// NewState 创建处于 (0, 0, Revealing) 的状态机
func NewState(captions []string, timing Timing) (*State, error) {
	if err := ValidateCaptions(captions); err != nil {
		return nil, err
	}

	runes := make([][]rune, len(captions))
	for i, c := range captions {
		runes[i] = []rune(c)
	}
	return &State{captions: runes, timing: timing, mode: Revealing}, nil
}

func (s *State) CaptionIndex() int { return s.captionIndex }

func (s *State) CharIndex() int { return s.charIndex }

func (s *State) Mode() Mode { return s.mode }

// Step 推进一步，返回应写入显示的文本和下一步之前的等待时间
func (s *State) Step() (string, time.Duration) {
	caption := s.captions[s.captionIndex]

	var text string
	delay := s.timing.Reveal
	if s.mode == Revealing {
		text = string(caption[:s.charIndex+1])
		s.charIndex++
	} else {
		text = string(caption[:s.charIndex-1])
		s.charIndex--
		delay = s.timing.Delete
	}

	if s.mode == Revealing && s.charIndex == len(caption) {
		s.mode = Deleting
		delay = s.timing.HoldFull
	} else if s.mode == Deleting && s.charIndex == 0 {
		s.mode = Revealing
		s.captionIndex = (s.captionIndex + 1) % len(s.captions)
		delay = s.timing.HoldEmpty
	}

	return text, delay
}

// Snapshot 返回当前状态
func (s *State) Snapshot() Snapshot {
	caption := s.captions[s.captionIndex]
	return Snapshot{
		CaptionIndex: s.captionIndex,
		CharIndex:    s.charIndex,
		Mode:         s.mode.String(),
		Caption:      string(caption),
		Text:         string(caption[:s.charIndex]),
	}
}
