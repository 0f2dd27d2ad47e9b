package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/page"
)

// VisitorCookie 标识访客的 cookie
const VisitorCookie = "portfolio_visitor"

// 一年
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// visitorSession 访客的页面交互状态
type visitorSession struct {
	menu   page.MobileMenu
	reveal *page.Reveal
}

// visitorID 返回访客 ID，没有时生成新的并写入 cookie
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(VisitorCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

func (s *Server) session(c *gin.Context) *visitorSession {
	id := visitorID(c)
	if sess, ok := s.sessions.Get(id); ok {
		return sess
	}

	sess := &visitorSession{reveal: page.NewReveal(page.DefaultRevealOptions())}
	// 并发请求可能同时创建，保留先写入的那个
	if prev, ok, _ := s.sessions.PeekOrAdd(id, sess); ok {
		return prev
	}
	return sess
}
