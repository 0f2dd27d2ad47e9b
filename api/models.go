package api

import (
	"time"

	"portfolio/define"
	"portfolio/display"
	"portfolio/page"
	"portfolio/project"
	"portfolio/typing"
)

// ===== 通用响应模型 =====

// ApiResponse 统一 API 响应格式
type ApiResponse = define.ApiResponse

// ===== 项目相关模型 =====

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

// ===== 联系表单相关模型 =====

// FieldValidateRequest 单个字段校验请求
type FieldValidateRequest struct {
	Value string `json:"value"`
}

// ===== 主题相关模型 =====

// ThemeRequest 主题设置请求
type ThemeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// ===== 打字效果相关模型 =====

// TypingStartRequest 启动请求，名称为空时启动默认文案集
type TypingStartRequest struct {
	Name string `json:"name"`
}

// TypingStatusResponse 打字效果状态响应
type TypingStatusResponse struct {
	typing.Status
	Text        display.Frame `json:"text"`
	Subscribers int           `json:"subscribers"`
}

// CaptionSetRequest 注册文案集请求
type CaptionSetRequest struct {
	Name     string   `json:"name" binding:"required"`
	Captions []string `json:"captions" binding:"required,min=1"`
}

// ===== 页面交互相关模型 =====

// ActiveSectionRequest 当前章节计算请求
type ActiveSectionRequest struct {
	Sections []page.Section `json:"sections" binding:"dive"`
	ScrollY  float64        `json:"scrollY"`
}

// ActiveSectionResponse 当前章节响应，Found 为 false 时保留原来的高亮
type ActiveSectionResponse struct {
	Section string `json:"section,omitempty"`
	Found   bool   `json:"found"`
}

// ScrollTargetRequest 滚动目标计算请求
type ScrollTargetRequest struct {
	SectionTop   float64 `json:"sectionTop"`
	HeaderHeight float64 `json:"headerHeight" binding:"gte=0"`
}

// ScrollTargetResponse 滚动目标响应
type ScrollTargetResponse struct {
	Top float64 `json:"top"`
}

// RevealRequest 入场动画计算请求
type RevealRequest struct {
	Elements []page.Element `json:"elements" binding:"dive"`
	ScrollY  float64        `json:"scrollY"`
	Viewport float64        `json:"viewport" binding:"gt=0"`
}

// RevealResponse 新进入视口的元素
type RevealResponse struct {
	Revealed  []string `json:"revealed"`
	Class     string   `json:"class"`
	Observing int      `json:"observing"`
}

// MenuClickRequest 页面点击位置
type MenuClickRequest struct {
	OnToggle bool `json:"onToggle"`
	OnMenu   bool `json:"onMenu"`
	OnLink   bool `json:"onLink"`
}

// MenuResponse 移动端菜单状态
type MenuResponse struct {
	Open bool `json:"open"`
}

// ShareResponse 分享链接
type ShareResponse struct {
	URL string `json:"url"`
}

// ===== 系统相关模型 =====

// SystemStatusResponse 系统状态响应
type SystemStatusResponse struct {
	Typing      typing.Status `json:"typing"`
	Subscribers int           `json:"subscribers"`
	Projects    int           `json:"projects"`
	Uptime      time.Duration `json:"uptime"`
	Version     string        `json:"version"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
