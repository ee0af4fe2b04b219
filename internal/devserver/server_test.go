package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/las"
	"github.com/yacobolo/las/internal/jit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"),
		[]byte(`<!DOCTYPE html><html><head><title>t</title></head><body class="flex"></body></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte(`console.log("hi")`), 0o644))

	sources := &las.Sources{
		Table:  jit.StyleTable{"flex": "display:flex", "hidden": "display:none"},
		Config: jit.NewConfig(),
	}
	engine := las.NewEngine(sources, las.Options{Extensions: []string{".html"}})
	require.NoError(t, engine.Init(context.Background(), []string{root}))

	return New(engine, Config{Root: root}), root
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_CSS(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), CSSPath)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, las.WatchHeader+".flex { display:flex }\n\n", rec.Body.String())
}

func TestServer_StaticHTMLInjected(t *testing.T) {
	s, _ := newTestServer(t)

	for _, target := range []string{"/", "/index.html"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, s.Handler(), target)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `<style id="las-jit">`+las.WatchHeader+".flex { display:flex }\n\n</style>")
			assert.Contains(t, body, "<script data-las-client")
			assert.Contains(t, body, `<body class="flex">`)
		})
	}
}

func TestServer_StaticAssetsUntouched(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/app.js")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `console.log("hi")`, rec.Body.String())
}

func TestServer_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/missing.html").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/../../etc/passwd.html").Code)
}

func TestServer_NoRoot(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.Root = ""

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/index.html").Code)
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s.Handler(), CSSPath)
	s.Notify("index.html")

	rec := get(t, s.Handler(), MetricsPath)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `las_http_requests_total{method="GET",route="/las.css",status="200"} 1`)
	assert.Contains(t, body, "las_css_updates_total 1")
	assert.Contains(t, body, "las_classes 1")
}

func TestServer_WebSocketUpdate(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + WSPath
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome Message
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome.Type)
	assert.Equal(t, 1, s.Hub().Count())

	s.Notify("index.html")

	var update Message
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "update", update.Type)
	assert.Equal(t, CSSPath, update.Path)
	assert.NotZero(t, update.Timestamp)

	s.Hub().Close()
	assert.Equal(t, 0, s.Hub().Count())
}

func TestServer_RunShutsDown(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestInjectCSS(t *testing.T) {
	tests := []struct {
		name string
		page string
		css  string
		want []string
	}{
		{
			name: "appends to head",
			page: `<html><head><title>x</title></head><body></body></html>`,
			css:  ".a { color: red }",
			want: []string{`<title>x</title><style id="las-jit">.a { color: red }</style>`},
		},
		{
			name: "creates head",
			page: `<p>hello</p>`,
			css:  ".b>.c { content: '\"' }",
			want: []string{`<head><style id="las-jit">.b>.c { content: '"' }</style>`},
		},
		{
			name: "replaces previous injection",
			page: `<html><head><style id="las-jit">old</style><script data-las-client="">x</script></head></html>`,
			css:  "new",
			want: []string{`<style id="las-jit">new</style>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := InjectCSS([]byte(tt.page), tt.css)
			require.NoError(t, err)

			html := string(out)
			for _, w := range tt.want {
				assert.Contains(t, html, w)
			}
			assert.Equal(t, 1, strings.Count(html, `id="las-jit"`))
			assert.Equal(t, 1, strings.Count(html, "data-las-client"))
			assert.NotContains(t, html, "old")
		})
	}
}

func TestReadFS(t *testing.T) {
	_, root := newTestServer(t)

	page, err := readFS(http.Dir(root), "/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>t</title>")

	_, err = readFS(http.Dir(root), "/nope.html")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
