package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"portfolio/typing"
)

// 推送一帧的写超时
const wsWriteTimeout = 5 * time.Second

// handleTypingStatus 获取打字效果状态
func (s *Server) handleTypingStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: TypingStatusResponse{
			Status:      s.engine.Status(),
			Text:        s.broadcaster.Last(),
			Subscribers: s.broadcaster.Subscribers(),
		},
	})
}

// handleStartTyping 启动文案集
func (s *Server) handleStartTyping(c *gin.Context) {
	var req TypingStartRequest
	// 允许空请求体
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ApiResponse{
				Status: "error",
				Error:  "无效的启动请求：" + err.Error(),
			})
			return
		}
	}
	if req.Name == "" {
		req.Name = typing.DefaultSetName
	}

	if err := s.engine.Start(req.Name); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, typing.ErrUnknownSet) {
			status = http.StatusNotFound
		}
		c.JSON(status, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("启动文案集失败：%v", err),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("文案集 %s 已启动", req.Name),
		Data:    s.engine.Status(),
	})
}

// handleStopTyping 停止打字效果
func (s *Server) handleStopTyping(c *gin.Context) {
	if err := s.engine.Stop(); err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("停止打字效果失败：%v", err),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: "打字效果已停止",
	})
}

// handleTypingText 获取当前显示的文本
func (s *Server) handleTypingText(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.broadcaster.Last(),
	})
}

// handleGetCaptionSets 获取已注册的文案集
func (s *Server) handleGetCaptionSets(c *gin.Context) {
	names := s.engine.Registered()
	sets := make([]typing.CaptionSet, 0, len(names))
	for _, name := range names {
		if set, ok := s.engine.Set(name); ok {
			sets = append(sets, set)
		}
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   sets,
	})
}

// handleRegisterCaptionSet 注册文案集
func (s *Server) handleRegisterCaptionSet(c *gin.Context) {
	var req CaptionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的文案集：" + err.Error(),
		})
		return
	}

	if err := s.engine.Register(typing.CaptionSet{Name: req.Name, Captions: req.Captions}); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("注册文案集失败：%v", err),
		})
		return
	}

	c.JSON(http.StatusCreated, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("文案集 %s 已注册", req.Name),
	})
}

// handleTypingStream 通过 WebSocket 推送每一次文本更新
func (s *Server) handleTypingStream(c *gin.Context) {
	// 先订阅再升级，握手完成后的更新不会丢失
	frames, unsubscribe := s.broadcaster.Subscribe()
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket 升级失败：%v", err)
		return
	}
	defer conn.Close()

	// 读取循环只用于感知客户端断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("⚠️ WebSocket 读取失败：%v", err)
				}
				return
			}
		}
	}()

	if last := s.broadcaster.Last(); last.Seq > 0 {
		if err := writeFrame(conn, last); err != nil {
			return
		}
	}

	for {
		select {
		case <-closed:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := writeFrame(conn, frame); err != nil {
				log.Printf("⚠️ WebSocket 推送失败：%v", err)
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
