package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
	appweb "expensetracker/web"
)

type Server struct {
	http.Server
	templates *template.Template
	store     *store.Store
	prefs     *settings.Preferences
	exporter  export.Exporter
	now       func() time.Time
	logger    *applog.Logger
}

type Option func(*Server)

// WithClock sets the reference instant used for the summary figures.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithExporter overrides the CSV dialect used for downloads.
func WithExporter(x export.Exporter) Option {
	return func(s *Server) { s.exporter = x }
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, st *store.Store, prefs *settings.Preferences, opts ...Option) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		store:  st,
		prefs:  prefs,
		now:    time.Now,
		logger: applog.New(applog.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentHTTP)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"amount": core.FormatAmount,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", cacheStatic(http.FileServer(http.FS(static)))))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /expenses/{id}/delete", s.handleDeleteExpense)
	mux.HandleFunc("POST /expenses/{id}/edit", s.handleEditExpense)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("POST /theme", s.handleToggleTheme)

	s.Handler = s.withRequestLogging(withSecurityHeaders(mux))
	return s, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Shutting down HTTP server", applog.FieldOperation, applog.OpShutdown)
	return s.Server.Shutdown(ctx)
}

func cacheStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store == nil || s.prefs == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
