package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nao1215/cordexplorer/internal/chart"
	"github.com/nao1215/cordexplorer/internal/model"
)

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// PageConfig holds the page header and preview size.
type PageConfig struct {
	Title       string
	Description string
	PreviewRows int
}

// Server is the dashboard HTTP server.
type Server struct {
	echo    *echo.Echo
	cache   *SessionCache
	metrics *Metrics
	logger  *slog.Logger
	page    PageConfig
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPage sets the page header and preview size.
func WithPage(cfg PageConfig) Option {
	return func(s *Server) {
		s.page = cfg
	}
}

// WithMetrics sets the collectors exposed on /metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server reading from cache.
func New(cache *SessionCache, opts ...Option) (*Server, error) {
	s := &Server{
		cache: cache,
		page: PageConfig{
			Title:       "CORD-19 Data Explorer",
			Description: "A simple application to explore the COVID-19 Open Research Dataset.",
			PreviewRows: 10,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.handleError

	e.GET("/", s.index)
	e.GET("/charts/wordcloud.png", s.wordCloudPNG)
	e.GET("/charts/:name", s.chart)
	e.GET("/api/summary", s.summary)
	e.POST("/api/reload", s.reload)
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	s.echo = e
	return s, nil
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// handleError logs the failure and answers with a JSON error body.
func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}

	req := c.Request()
	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(req.Context(), level, "request failed",
		"status", code,
		"method", req.Method,
		"path", req.URL.Path,
		"remote", c.RealIP(),
		"error", err,
	)

	if !c.Response().Committed {
		_ = c.JSON(code, map[string]string{"error": msg})
	}
}

// analysis returns the cached analysis or an HTTP error.
func (s *Server) analysis(c echo.Context) (*model.Analysis, error) {
	a, err := s.cache.Get(c.Request().Context())
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "load dataset: "+err.Error()).SetInternal(err)
	}
	if !a.Complete() {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "dataset analysis is incomplete")
	}
	return a, nil
}

func (s *Server) index(c echo.Context) error {
	a, err := s.analysis(c)
	if err != nil {
		return err
	}
	s.metrics.Rendered("index")
	return c.Render(http.StatusOK, "index.html", newPage(s.page, a))
}

func (s *Server) chart(c echo.Context) error {
	name := c.Param("name")
	render, ok := chartRenderers[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown chart: "+name)
	}

	a, err := s.analysis(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render(&buf, a); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	s.metrics.Rendered(name)
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) wordCloudPNG(c echo.Context) error {
	a, err := s.analysis(c)
	if err != nil {
		return err
	}

	p, err := chart.WordCloudImage(a.WordCloud)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, p, chart.WordCloudWidth, chart.WordCloudHeight); err != nil {
		return fmt.Errorf("encode word cloud: %w", err)
	}
	s.metrics.Rendered("wordcloud_png")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// summaryResponse is the body of GET /api/summary.
type summaryResponse struct {
	ID          string           `json:"id"`
	SourcePath  string           `json:"source_path"`
	LoadedAt    time.Time        `json:"loaded_at"`
	RowsLoaded  int              `json:"rows_loaded"`
	RowsDropped int              `json:"rows_dropped"`
	RowsKept    int              `json:"rows_kept"`
	Summary     *model.Summary   `json:"summary"`
	WordCloud   *model.WordCloud `json:"word_cloud"`
}

func newSummaryResponse(a *model.Analysis) summaryResponse {
	return summaryResponse{
		ID:          a.ID,
		SourcePath:  a.SourcePath,
		LoadedAt:    a.FinishedAt,
		RowsLoaded:  a.RowsLoaded,
		RowsDropped: a.RowsDropped,
		RowsKept:    a.RowsKept(),
		Summary:     a.Summary,
		WordCloud:   a.WordCloud,
	}
}

func (s *Server) summary(c echo.Context) error {
	a, err := s.analysis(c)
	if err != nil {
		return err
	}
	s.metrics.Rendered("summary")
	return c.JSON(http.StatusOK, newSummaryResponse(a))
}

func (s *Server) reload(c echo.Context) error {
	a, err := s.cache.Reload(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "reload dataset: "+err.Error()).SetInternal(err)
	}
	s.logger.Info("dataset reloaded", "run_id", a.ID, "rows_kept", a.RowsKept())
	return c.JSON(http.StatusOK, newSummaryResponse(a))
}
