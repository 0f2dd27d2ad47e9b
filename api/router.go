package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio/contact"
	"portfolio/display"
	"portfolio/project"
	"portfolio/theme"
	"portfolio/typing"
)

// 同时保留页面状态的访客上限
const maxVisitorSessions = 1024

// Options 创建服务器所需的组件
type Options struct {
	Engine      *typing.Engine
	Broadcaster *display.Broadcaster
	Catalog     *project.Catalog
	Renderer    *project.Renderer
	Submitter   *contact.Submitter
	Themes      theme.Store
	Registry    *prometheus.Registry // 为 nil 时不注册 /metrics
	Version     string
}

// Server API 服务器结构体
type Server struct {
	engine      *typing.Engine
	broadcaster *display.Broadcaster
	catalog     *project.Catalog
	renderer    *project.Renderer
	submitter   *contact.Submitter
	themes      theme.Store
	registry    *prometheus.Registry
	metrics     *httpMetrics
	sessions    *lru.Cache[string, *visitorSession]
	upgrader    websocket.Upgrader
	startTime   time.Time
	version     string
}

// NewServer 创建新的 API 服务器实例
func NewServer(opts Options) *Server {
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	// 容量为正数时 lru.New 不会返回错误
	sessions, _ := lru.New[string, *visitorSession](maxVisitorSessions)

	s := &Server{
		engine:      opts.Engine,
		broadcaster: opts.Broadcaster,
		catalog:     opts.Catalog,
		renderer:    opts.Renderer,
		submitter:   opts.Submitter,
		themes:      opts.Themes,
		registry:    opts.Registry,
		sessions:    sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		startTime: time.Now(),
		version:   version,
	}
	if opts.Registry != nil {
		s.metrics = mustNewHTTPMetrics(opts.Registry)
	}
	return s
}

// SetupRoutes 设置 API 路由
func (s *Server) SetupRoutes(r *gin.Engine) {
	if s.metrics != nil {
		r.Use(s.metrics.middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	{
		// 项目详情路由
		projects := v1.Group("/projects")
		{
			projects.GET("", s.handleGetProjects)                // 获取项目列表
			projects.GET("/:key", s.handleGetProject)            // 获取项目详情
			projects.GET("/:key/modal", s.handleGetProjectModal) // 获取项目浮层 HTML
		}

		// 联系表单路由
		contacts := v1.Group("/contact")
		{
			contacts.POST("", s.handleSubmitContact)                 // 校验并模拟提交
			contacts.GET("/:id", s.handleGetSubmission)              // 查询提交状态
			contacts.POST("/validate", s.handleValidateContact)      // 校验整个表单
			contacts.POST("/validate/:field", s.handleValidateField) // 校验单个字段
		}

		// 主题路由
		themes := v1.Group("/theme")
		{
			themes.GET("", s.handleGetTheme)            // 获取主题
			themes.PUT("", s.handleSetTheme)            // 设置主题
			themes.POST("/toggle", s.handleToggleTheme) // 切换主题
		}

		// 打字效果路由
		typings := v1.Group("/typing")
		{
			typings.GET("", s.handleTypingStatus)             // 获取打字效果状态
			typings.POST("/start", s.handleStartTyping)       // 启动文案集
			typings.POST("/stop", s.handleStopTyping)         // 停止
			typings.GET("/text", s.handleTypingText)          // 获取当前显示的文本
			typings.GET("/ws", s.handleTypingStream)          // WebSocket 推送文本
			typings.GET("/sets", s.handleGetCaptionSets)      // 获取文案集列表
			typings.POST("/sets", s.handleRegisterCaptionSet) // 注册文案集
		}

		// 页面交互路由
		pages := v1.Group("/page")
		{
			pages.POST("/active", s.handleActiveSection)       // 计算当前高亮的章节
			pages.POST("/scroll-target", s.handleScrollTarget) // 计算滚动目标
			pages.POST("/reveal", s.handleReveal)              // 计算需要入场动画的元素
			pages.GET("/menu", s.handleGetMenu)                // 获取移动端菜单状态
			pages.POST("/menu/toggle", s.handleToggleMenu)     // 点击菜单按钮
			pages.POST("/menu/click", s.handleMenuClick)       // 页面点击
			pages.GET("/share", s.handleShareURL)              // 生成分享链接
		}

		// 系统管理路由
		system := v1.Group("/system")
		{
			system.GET("/status", s.handleGetSystemStatus) // 获取系统状态
			system.GET("/health", s.handleHealthCheck)     // 健康检查
		}
	}
}
