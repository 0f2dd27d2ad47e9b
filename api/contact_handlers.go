package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/contact"
)

// handleValidateContact 校验整个表单，返回每个字段的结果
func (s *Server) handleValidateContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的表单：" + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   contact.Validate(form),
	})
}

// handleValidateField 字段失去焦点时校验单个字段
func (s *Server) handleValidateField(c *gin.Context) {
	field := c.Param("field")

	var req FieldValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的校验请求：" + err.Error(),
		})
		return
	}

	result, err := contact.ValidateField(field, req.Value)
	if err != nil {
		c.JSON(http.StatusNotFound, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   result,
	})
}

// handleSubmitContact 校验表单并开始模拟发送
func (s *Server) handleSubmitContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的表单：" + err.Error(),
		})
		return
	}

	sub, err := s.submitter.Submit(form)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, ApiResponse{
				Status: "error",
				Error:  err.Error(),
				Data:   verr.Result,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("提交失败：%v", err),
		})
		return
	}

	c.JSON(http.StatusAccepted, ApiResponse{
		Status:  "success",
		Message: "Sending...",
		Data:    sub,
	})
}

// handleGetSubmission 查询模拟提交的状态
func (s *Server) handleGetSubmission(c *gin.Context) {
	id := c.Param("id")

	sub, ok := s.submitter.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("提交记录 %s 不存在", id),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   sub,
	})
}
