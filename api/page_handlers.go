package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/page"
)

// handleActiveSection 根据滚动位置计算导航中高亮的章节
func (s *Server) handleActiveSection(c *gin.Context) {
	var req ActiveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的章节请求：" + err.Error(),
		})
		return
	}

	id, found := page.ActiveSection(req.Sections, req.ScrollY)
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   ActiveSectionResponse{Section: id, Found: found},
	})
}

// handleScrollTarget 计算点击导航链接后的滚动位置
func (s *Server) handleScrollTarget(c *gin.Context) {
	var req ScrollTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的滚动请求：" + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   ScrollTargetResponse{Top: page.ScrollTarget(req.SectionTop, req.HeaderHeight)},
	})
}

// handleReveal 观察请求中的元素，返回本次新进入视口的元素。
// 同一访客的元素只会触发一次。
func (s *Server) handleReveal(c *gin.Context) {
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的入场动画请求：" + err.Error(),
		})
		return
	}

	reveal := s.session(c).reveal
	for _, el := range req.Elements {
		reveal.Observe(el)
	}
	revealed := reveal.Update(req.ScrollY, req.Viewport)
	if revealed == nil {
		revealed = []string{}
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: RevealResponse{
			Revealed:  revealed,
			Class:     page.RevealClass,
			Observing: reveal.Observing(),
		},
	})
}

// handleGetMenu 获取移动端菜单状态
func (s *Server) handleGetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   MenuResponse{Open: s.session(c).menu.IsOpen()},
	})
}

// handleToggleMenu 点击菜单按钮
func (s *Server) handleToggleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   MenuResponse{Open: s.session(c).menu.Toggle()},
	})
}

// handleMenuClick 页面上的一次点击，点击导航链接或菜单外部都会收起菜单
func (s *Server) handleMenuClick(c *gin.Context) {
	var req MenuClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的点击请求：" + err.Error(),
		})
		return
	}

	menu := &s.session(c).menu
	if req.OnLink {
		menu.LinkClicked()
	} else {
		menu.Clicked(req.OnToggle, req.OnMenu)
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   MenuResponse{Open: menu.IsOpen()},
	})
}

// handleShareURL 生成社交平台分享链接
func (s *Server) handleShareURL(c *gin.Context) {
	platform := c.Query("platform")

	url, ok := page.ShareURL(platform, c.Query("url"), c.Query("text"))
	if !ok {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "不支持的分享平台：" + platform,
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   ShareResponse{URL: url},
	})
}
