package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleGetSystemStatus 获取系统状态
func (s *Server) handleGetSystemStatus(c *gin.Context) {
	response := SystemStatusResponse{
		Typing:      s.engine.Status(),
		Subscribers: s.broadcaster.Subscribers(),
		Projects:    s.catalog.Len(),
		Uptime:      time.Since(s.startTime),
		Version:     s.version,
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   response,
	})
}

// handleHealthCheck 健康检查
func (s *Server) handleHealthCheck(c *gin.Context) {
	status := "healthy"
	if s.engine == nil || s.themes == nil {
		status = "unhealthy"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
	}

	// 根据健康状态返回相应的 HTTP 状态码
	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, ApiResponse{
		Status: "success",
		Data:   response,
	})
}
