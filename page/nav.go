package page

import (
	"log"
	"sync"
)

const (
	// ActiveOffset 计算当前章节时加到滚动位置上的偏移
	ActiveOffset = 100
	// ScrollGap 平滑滚动时章节顶部和页头之间留出的距离
	ScrollGap = 20
)

// Section 页面上带 id 的章节
type Section struct {
	ID     string  `json:"id" binding:"required"`
	Top    float64 `json:"top"`
	Height float64 `json:"height" binding:"gte=0"`
}

// ActiveSection 返回滚动到 scrollY 时应该高亮的章节
//
// 位置为 scrollY+ActiveOffset，章节区间为 [Top, Top+Height)，
// 多个章节同时命中时取最后一个。没有命中时返回 false，调用方保留原来的高亮。
func ActiveSection(sections []Section, scrollY float64) (string, bool) {
	position := scrollY + ActiveOffset

	active, found := "", false
	for _, section := range sections {
		if position >= section.Top && position < section.Top+section.Height {
			active, found = section.ID, true
		}
	}
	return active, found
}

// ScrollTarget 点击导航链接后页面应滚动到的位置
func ScrollTarget(sectionTop, headerHeight float64) float64 {
	return sectionTop - headerHeight - ScrollGap
}

// MobileMenu 移动端导航菜单的展开状态
type MobileMenu struct {
	mutex sync.Mutex
	open  bool
}

// Toggle 点击菜单按钮，返回切换后的状态
func (m *MobileMenu) Toggle() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.open = !m.open
	if m.open {
		log.Printf("ℹ️ 移动端菜单已展开")
	}
	return m.open
}

// LinkClicked 点击任意导航链接都会收起菜单
func (m *MobileMenu) LinkClicked() {
	m.close()
}

// Clicked 处理页面上的一次点击，点击位置在按钮和菜单之外时收起菜单
func (m *MobileMenu) Clicked(onToggle, onMenu bool) {
	if onToggle || onMenu {
		return
	}
	m.close()
}

// IsOpen 菜单是否展开
func (m *MobileMenu) IsOpen() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.open
}

func (m *MobileMenu) close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.open = false
}
