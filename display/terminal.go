package display

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DefaultCaret 文本末尾的光标字符
const DefaultCaret = '▌'

// Terminal 把文本绘制在 tcell 屏幕的某一行上
type Terminal struct {
	mutex  sync.Mutex
	screen tcell.Screen
	row    int
	col    int
	style  tcell.Style
	caret  rune
	prefix string
}

// TerminalOption 终端显示配置项
type TerminalOption func(*Terminal)

// WithStyle 指定文本样式
func WithStyle(style tcell.Style) TerminalOption {
	return func(t *Terminal) { t.style = style }
}

// WithCaret 指定光标字符，0 表示不绘制光标
func WithCaret(caret rune) TerminalOption {
	return func(t *Terminal) { t.caret = caret }
}

// WithPrefix 在文本前绘制固定前缀
func WithPrefix(prefix string) TerminalOption {
	return func(t *Terminal) { t.prefix = prefix }
}

// NewTerminal 创建终端显示，文本从 (col, row) 开始绘制
func NewTerminal(screen tcell.Screen, row, col int, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		screen: screen,
		row:    row,
		col:    col,
		style:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		caret:  DefaultCaret,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetText 实现 typing.Sink，超出屏幕宽度的部分被截断
func (t *Terminal) SetText(text string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	width, _ := t.screen.Size()
	for x := t.col; x < width; x++ {
		t.screen.SetContent(x, t.row, ' ', nil, tcell.StyleDefault)
	}

	x := t.col
	for _, r := range t.prefix + text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		t.screen.SetContent(x, t.row, r, nil, t.style)
		x += w
	}
	if t.caret != 0 && x < width {
		t.screen.SetContent(x, t.row, t.caret, nil, t.style.Blink(true))
	}

	t.screen.Show()
	return nil
}
