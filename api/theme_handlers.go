package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/theme"
)

// handleGetTheme 获取访客的主题，没有记录时为深色
func (s *Server) handleGetTheme(c *gin.Context) {
	mode, err := s.themes.Get(c.Request.Context(), visitorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   mode.Preference(),
	})
}

// handleSetTheme 设置访客的主题
func (s *Server) handleSetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的主题请求：" + err.Error(),
		})
		return
	}

	mode, ok := theme.ParseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("%v: %s", theme.ErrInvalidMode, req.Mode),
		})
		return
	}

	if err := s.themes.Set(c.Request.Context(), visitorID(c), mode); err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   mode.Preference(),
	})
}

// handleToggleTheme 切换访客的主题
func (s *Server) handleToggleTheme(c *gin.Context) {
	mode, err := theme.Toggle(c.Request.Context(), s.themes, visitorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   mode.Preference(),
	})
}
