package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/project"
)

// handleGetProjects 获取项目列表
func (s *Server) handleGetProjects(c *gin.Context) {
	projects := s.catalog.List()

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: ProjectListResponse{
			Projects: projects,
			Total:    len(projects),
		},
	})
}

// handleGetProject 获取项目详情
func (s *Server) handleGetProject(c *gin.Context) {
	p, ok := s.lookupProject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   p,
	})
}

// handleGetProjectModal 获取项目详情浮层的 HTML 片段
func (s *Server) handleGetProjectModal(c *gin.Context) {
	p, ok := s.lookupProject(c)
	if !ok {
		return
	}

	html, err := s.renderer.Render(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("渲染项目 %s 失败：%v", p.Key, err),
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// 未找到项目时直接写入 404 响应
func (s *Server) lookupProject(c *gin.Context) (project.Project, bool) {
	key := c.Param("key")

	p, err := s.catalog.Get(key)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("项目 %s 不存在", key),
		})
		return project.Project{}, false
	}
	return p, true
}
