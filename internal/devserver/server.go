package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yacobolo/las"
)

// Routes
const (
	CSSPath     = "/las.css"
	WSPath      = "/__las/ws"
	MetricsPath = "/metrics"
)

// Config contains server configuration
type Config struct {
	Addr   string // ":5173"
	Root   string // Static file root; empty serves only the stylesheet
	Logger *zap.Logger
}

// Server wraps the HTTP router and its dependencies
type Server struct {
	router  *gin.Engine
	engine  *las.Engine
	hub     *Hub
	metrics *Metrics
	cfg     Config
	log     *zap.Logger
}

// New creates a server over engine
func New(engine *las.Engine, cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	metrics := NewMetrics()
	s := &Server{
		router:  gin.New(),
		engine:  engine,
		hub:     NewHub(log, metrics),
		metrics: metrics,
		cfg:     cfg,
		log:     log,
	}

	s.router.Use(gin.Recovery(), metrics.Middleware(), s.requestLogger())

	s.router.GET(CSSPath, s.handleCSS)
	s.router.GET(WSPath, s.hub.ServeWS)
	s.router.GET(MetricsPath, gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	s.router.NoRoute(s.handleStatic)

	s.recordStats()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Notify tells every client the stylesheet changed because of path
func (s *Server) Notify(path string) {
	s.metrics.CSSUpdates.Inc()
	s.recordStats()

	err := s.hub.Broadcast(Message{
		Type:      "update",
		Path:      CSSPath,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		s.log.Error("broadcast failed", zap.Error(err))
		return
	}
	s.log.Debug("update pushed", zap.String("file", path), zap.Int("clients", s.hub.Count()))
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", zap.String("addr", s.cfg.Addr), zap.String("root", s.cfg.Root))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)

	case <-ctx.Done():
		// Hijacked websocket connections are not closed by Shutdown
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) recordStats() {
	stats := s.engine.Stats()
	s.metrics.CSSBytes.Set(float64(stats.Bytes))
	s.metrics.ClassesTotal.Set(float64(stats.Total))
	s.metrics.Unresolved.Set(float64(stats.Unresolved))
}

func (s *Server) handleCSS(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(s.engine.CSS()))
}

// handleStatic serves files below Root, injecting the stylesheet into HTML
func (s *Server) handleStatic(c *gin.Context) {
	if s.cfg.Root == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.Status(http.StatusNotFound)
		return
	}

	fs := http.Dir(s.cfg.Root)
	name := path.Clean("/" + c.Request.URL.Path)

	if info, err := statFS(fs, name); err == nil && info.IsDir() {
		name = path.Join(name, "index.html")
	}

	if !isHTML(name) {
		c.FileFromFS(name, fs)
		return
	}

	page, err := readFS(fs, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	out, err := InjectCSS(page, s.engine.CSS())
	if err != nil {
		s.log.Warn("injection failed, serving page unchanged", zap.String("page", name), zap.Error(err))
		out = page
	} else {
		s.metrics.InjectedPages.Inc()
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
}

// requestLogger logs each request at debug level
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}

func statFS(fs http.FileSystem, name string) (os.FileInfo, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Stat()
}

func readFS(fs http.FileSystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
