package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/contact"
	"portfolio/display"
	"portfolio/page"
	"portfolio/project"
	"portfolio/schedule"
	"portfolio/theme"
	"portfolio/typing"
)

type testEnv struct {
	router      *gin.Engine
	clock       *schedule.Manual
	broadcaster *display.Broadcaster
	engine      *typing.Engine
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	clock := schedule.NewManual()
	broadcaster := display.NewBroadcaster(0)
	engine := typing.NewEngine(broadcaster, clock, typing.DefaultTiming(), typing.MustNewMetrics(reg))
	for _, set := range typing.DefaultCaptionSets() {
		require.NoError(t, engine.Register(set))
	}
	renderer, err := project.NewRenderer(16)
	require.NoError(t, err)

	srv := NewServer(Options{
		Engine:      engine,
		Broadcaster: broadcaster,
		Catalog:     project.NewDefaultCatalog(),
		Renderer:    renderer,
		Submitter:   contact.NewSubmitter(clock, contact.DefaultSubmitTiming()),
		Themes:      theme.NewMemoryStore(),
		Registry:    reg,
	})
	r := gin.New()
	srv.SetupRoutes(r)

	t.Cleanup(func() { _ = engine.Stop() })
	return &testEnv{router: r, clock: clock, broadcaster: broadcaster, engine: engine}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ProjectListResponse](t, resp.Data)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "blockchain", list.Projects[0].Key)

	w, resp = env.do(t, http.MethodGet, "/api/v1/projects/scanner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "scanner", decode[project.Project](t, resp.Data).Key)

	w, resp = env.do(t, http.MethodGet, "/api/v1/projects/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)

	w, _ = env.do(t, http.MethodGet, "/api/v1/projects/blockchain/modal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Key Features")
}

func TestContactValidateAndSubmit(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/contact/validate/email", FieldValidateRequest{Value: "nope"})
	require.Equal(t, http.StatusOK, w.Code)
	field := decode[contact.FieldResult](t, resp.Data)
	assert.False(t, field.Valid)
	assert.Equal(t, "Please enter a valid email address", field.Message)

	w, _ = env.do(t, http.MethodPost, "/api/v1/contact/validate/phone", FieldValidateRequest{Value: "1"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(t, http.MethodPost, "/api/v1/contact/validate", contact.Form{Name: "Al"})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[contact.Result](t, resp.Data)
	assert.False(t, result.Valid)
	assert.True(t, result.Fields[0].Valid)

	w, resp = env.do(t, http.MethodPost, "/api/v1/contact", contact.Form{Name: "Al"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, decode[contact.Result](t, resp.Data).Valid)

	form := contact.Form{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Internship",
		Message: "Looking forward to talking.",
	}
	w, resp = env.do(t, http.MethodPost, "/api/v1/contact", form)
	require.Equal(t, http.StatusAccepted, w.Code)
	sub := decode[contact.Submission](t, resp.Data)
	assert.Equal(t, contact.StatusSending, sub.Status)

	env.clock.Advance(2 * time.Second)
	_, resp = env.do(t, http.MethodGet, "/api/v1/contact/"+sub.ID, nil)
	sub = decode[contact.Submission](t, resp.Data)
	assert.Equal(t, contact.StatusSent, sub.Status)
	assert.Equal(t, contact.SuccessMessage, sub.Message)

	w, _ = env.do(t, http.MethodGet, "/api/v1/contact/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestThemePerVisitor(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v1/theme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, theme.Dark.Preference(), decode[theme.Preference](t, resp.Data))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)

	_, resp = env.do(t, http.MethodPost, "/api/v1/theme/toggle", nil, cookies[0])
	assert.Equal(t, theme.Light, decode[theme.Preference](t, resp.Data).Mode)

	_, resp = env.do(t, http.MethodGet, "/api/v1/theme", nil, cookies[0])
	pref := decode[theme.Preference](t, resp.Data)
	assert.Equal(t, theme.Light, pref.Mode)
	assert.Equal(t, "fas fa-sun", pref.Icon)

	// 新访客仍是默认主题
	_, resp = env.do(t, http.MethodGet, "/api/v1/theme", nil)
	assert.Equal(t, theme.Dark, decode[theme.Preference](t, resp.Data).Mode)

	_, resp = env.do(t, http.MethodPut, "/api/v1/theme", ThemeRequest{Mode: "Dark"}, cookies[0])
	assert.Equal(t, theme.Dark, decode[theme.Preference](t, resp.Data).Mode)

	w, _ = env.do(t, http.MethodPut, "/api/v1/theme", ThemeRequest{Mode: "sepia"}, cookies[0])
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTypingLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/v1/typing/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.engine.IsRunning())
	assert.Equal(t, typing.DefaultSetName, env.engine.Current())

	env.clock.Advance(time.Second)
	_, resp := env.do(t, http.MethodGet, "/api/v1/typing/text", nil)
	assert.Equal(t, "A", decode[display.Frame](t, resp.Data).Text)

	env.clock.Advance(100 * time.Millisecond)
	_, resp = env.do(t, http.MethodGet, "/api/v1/typing", nil)
	status := decode[TypingStatusResponse](t, resp.Data)
	assert.True(t, status.IsRunning)
	assert.Equal(t, "As", status.Text.Text)
	require.NotNil(t, status.State)
	assert.Equal(t, 2, status.State.CharIndex)

	w, _ = env.do(t, http.MethodPost, "/api/v1/typing/start", TypingStartRequest{Name: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/typing/sets", CaptionSetRequest{Name: "short", Captions: []string{"Go"}})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, http.MethodPost, "/api/v1/typing/sets", CaptionSetRequest{Name: "bad", Captions: []string{""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, resp = env.do(t, http.MethodGet, "/api/v1/typing/sets", nil)
	assert.Len(t, decode[[]typing.CaptionSet](t, resp.Data), 2)

	w, _ = env.do(t, http.MethodPost, "/api/v1/typing/start", TypingStartRequest{Name: "short"})
	require.Equal(t, http.StatusOK, w.Code)
	env.clock.Advance(time.Second)
	assert.Equal(t, "G", env.broadcaster.Last().Text)

	w, _ = env.do(t, http.MethodPost, "/api/v1/typing/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.engine.IsRunning())
	assert.Equal(t, 0, env.clock.Pending())
}

func TestTypingStream(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.router)
	defer ts.Close()

	require.NoError(t, env.broadcaster.SetText("H"))

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/typing/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var frame display.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "H", frame.Text)

	require.NoError(t, env.broadcaster.SetText("Hi"))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "Hi", frame.Text)
	assert.Equal(t, uint64(2), frame.Seq)
}

func TestPageEndpoints(t *testing.T) {
	env := newTestEnv(t)

	_, resp := env.do(t, http.MethodPost, "/api/v1/page/active", map[string]any{
		"scrollY": 550,
		"sections": []map[string]any{
			{"id": "home", "top": 0, "height": 600},
			{"id": "about", "top": 600, "height": 400},
		},
	})
	assert.Equal(t, ActiveSectionResponse{Section: "about", Found: true}, decode[ActiveSectionResponse](t, resp.Data))

	w, _ := env.do(t, http.MethodPost, "/api/v1/page/active", map[string]any{
		"sections": []map[string]any{{"top": 0, "height": 600}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, resp = env.do(t, http.MethodPost, "/api/v1/page/scroll-target", ScrollTargetRequest{SectionTop: 1000, HeaderHeight: 70})
	assert.Equal(t, 910.0, decode[ScrollTargetResponse](t, resp.Data).Top)

	share := "/api/v1/page/share?platform=facebook&url=https%3A%2F%2Fexample.com"
	_, resp = env.do(t, http.MethodGet, share, nil)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fexample.com", decode[ShareResponse](t, resp.Data).URL)
	w, _ = env.do(t, http.MethodGet, "/api/v1/page/share?platform=fax", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPageVisitorSession(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/page/menu/toggle", nil)
	assert.True(t, decode[MenuResponse](t, resp.Data).Open)
	visitor := w.Result().Cookies()[0]

	_, resp = env.do(t, http.MethodGet, "/api/v1/page/menu", nil, visitor)
	assert.True(t, decode[MenuResponse](t, resp.Data).Open)

	_, resp = env.do(t, http.MethodPost, "/api/v1/page/menu/click", MenuClickRequest{OnMenu: true}, visitor)
	assert.True(t, decode[MenuResponse](t, resp.Data).Open)
	_, resp = env.do(t, http.MethodPost, "/api/v1/page/menu/click", MenuClickRequest{}, visitor)
	assert.False(t, decode[MenuResponse](t, resp.Data).Open)

	body := RevealRequest{
		Elements: []page.Element{{ID: "card", Top: 900, Height: 200}},
		ScrollY:  200,
		Viewport: 800,
	}
	_, resp = env.do(t, http.MethodPost, "/api/v1/page/reveal", body, visitor)
	reveal := decode[RevealResponse](t, resp.Data)
	assert.Equal(t, []string{"card"}, reveal.Revealed)
	assert.Equal(t, "fade-in-up", reveal.Class)

	_, resp = env.do(t, http.MethodPost, "/api/v1/page/reveal", body, visitor)
	assert.Empty(t, decode[RevealResponse](t, resp.Data).Revealed)
}

func TestSystemAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v1/system/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[HealthResponse](t, resp.Data).Status)

	_, resp = env.do(t, http.MethodGet, "/api/v1/system/status", nil)
	status := decode[SystemStatusResponse](t, resp.Data)
	assert.Equal(t, 2, status.Projects)
	assert.Equal(t, []string{typing.DefaultSetName}, status.Typing.Registered)

	w, _ = env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_http_requests_total{method="GET",route="/api/v1/system/health",status="200"} 1`)
}
