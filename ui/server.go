package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"mosaic/domain/analysis"
	"mosaic/internal"
	"mosaic/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html static
var embeddedFiles embed.FS

// Config holds UI settings
type Config struct {
	Title string
	Notes []byte // markdown shown under the title
}

// Server represents the web server for the dashboard
type Server struct {
	router    *gin.Engine
	app       *dashboard.App
	templates *template.Template
	config    Config
	notes     template.HTML
	logger    *internal.Logger
}

// NewServer parses templates and registers routes. gin's mode should be set
// by the caller before this runs.
func NewServer(app *dashboard.App, config Config, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.Title == "" {
		config.Title = "Optimism Airdrop Criteria"
	}

	s := &Server{
		router: gin.Default(),
		app:    app,
		config: config,
		logger: logger.With("ui"),
	}

	if err := s.initTemplates(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(config.Notes)) > 0 {
		s.notes = template.HTML(markdown.ToHTML(config.Notes, nil, nil))
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) initTemplates() error {
	funcMap := template.FuncMap{
		"modeLabel": func(m analysis.Mode) string {
			return m.Label()
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/dataset", s.handleDatasetInfo)
	api.GET("/columns", s.handleColumns)
	api.GET("/update", s.handleUpdate)
	api.POST("/update", s.handleUpdate)
	api.GET("/export/:format", s.handleExport)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening on http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down dashboard")
	return srv.Shutdown(shutdownCtx)
}
