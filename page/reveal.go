package page

import (
	"sort"
	"sync"
)

// RevealClass 元素进入视口后添加的动画 class
const RevealClass = "fade-in-up"

// DefaultRevealSelectors 需要入场动画的元素
var DefaultRevealSelectors = []string{
	".skill-category",
	".project-card",
	".blog-card",
	".timeline-item",
	".about-stats .stat",
	".contact-item",
}

// RevealOptions 观察器参数
type RevealOptions struct {
	Threshold    float64 `json:"threshold"`    // 可见比例达到该值时触发
	BottomMargin float64 `json:"bottomMargin"` // 视口底部收缩的像素
}

// DefaultRevealOptions threshold 0.1，底部收缩 50px
func DefaultRevealOptions() RevealOptions {
	return RevealOptions{Threshold: 0.1, BottomMargin: 50}
}

// Element 被观察的元素
type Element struct {
	ID     string  `json:"id" binding:"required"`
	Top    float64 `json:"top"`
	Height float64 `json:"height" binding:"gte=0"`
}

// IntersectionRatio 元素落在视口 [scrollY, scrollY+viewport-BottomMargin] 内的比例
func (o RevealOptions) IntersectionRatio(el Element, scrollY, viewport float64) float64 {
	rootTop := scrollY
	rootBottom := scrollY + viewport - o.BottomMargin
	if rootBottom < rootTop {
		return 0
	}

	bottom := el.Top + el.Height
	if el.Height <= 0 {
		if el.Top >= rootTop && el.Top <= rootBottom {
			return 1
		}
		return 0
	}

	overlap := min(bottom, rootBottom) - max(el.Top, rootTop)
	if overlap <= 0 {
		return 0
	}
	return overlap / el.Height
}

// Visible 元素是否达到触发比例
func (o RevealOptions) Visible(el Element, scrollY, viewport float64) bool {
	ratio := o.IntersectionRatio(el, scrollY, viewport)
	return ratio > 0 && ratio >= o.Threshold
}

// Reveal 入场动画观察器，每个元素只触发一次，触发后停止观察
type Reveal struct {
	options RevealOptions

	mutex    sync.Mutex
	observed map[string]Element
	revealed map[string]bool
}

func NewReveal(options RevealOptions) *Reveal {
	return &Reveal{
		options:  options,
		observed: make(map[string]Element),
		revealed: make(map[string]bool),
	}
}

// Observe 开始观察元素，已经触发过的元素不会再次观察
func (r *Reveal) Observe(el Element) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.revealed[el.ID] {
		return
	}
	r.observed[el.ID] = el
}

// Update 根据当前滚动位置计算新进入视口的元素，返回的 id 已排序
func (r *Reveal) Update(scrollY, viewport float64) []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var shown []string
	for id, el := range r.observed {
		if !r.options.Visible(el, scrollY, viewport) {
			continue
		}
		r.revealed[id] = true
		delete(r.observed, id)
		shown = append(shown, id)
	}
	sort.Strings(shown)
	return shown
}

// Revealed 元素是否已经播放过入场动画
func (r *Reveal) Revealed(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.revealed[id]
}

// Observing 仍在观察中的元素数量
func (r *Reveal) Observing() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.observed)
}
