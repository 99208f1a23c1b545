package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/basecase/watch"
)

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr        string // default :8087
	HTMLPath    string // rendered dashboard file, default dashboard.html
	ArtifactDir string // served under /artifacts/ when set
	RunLimit    int    // runs shown, default 20
	Logger      *slog.Logger
}

func (c *ServerConfig) defaults() {
	if c.Addr == "" {
		c.Addr = ":8087"
	}
	if c.HTMLPath == "" {
		c.HTMLPath = "dashboard.html"
	}
	if c.RunLimit <= 0 {
		c.RunLimit = 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Server serves the dashboard page, a JSON summary, and test artifacts. A
// database watcher re-renders the HTML file whenever another process writes
// results.
type Server struct {
	cfg   ServerConfig
	store *Store
	log   *slog.Logger
}

// NewServer wires a server around an open store.
func NewServer(store *Store, cfg ServerConfig) *Server {
	cfg.defaults()
	return &Server{cfg: cfg, store: store, log: cfg.Logger}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/api/runs", s.handleRuns)
	r.Get("/api/runs/{runID}", s.handleRun)
	if s.cfg.ArtifactDir != "" {
		r.Handle("/artifacts/*", http.StripPrefix("/artifacts/",
			http.FileServer(http.Dir(s.cfg.ArtifactDir))))
	}
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.cfg.HTMLPath)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.RecentRuns(r.Context(), s.cfg.RunLimit)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.RunSummary(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	results, err := s.store.Results(r.Context(), sum.Run.RunID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, map[string]any{"summary": sum, "results": results})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("dashboard: encode response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("dashboard: request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// Run renders the page, starts the change watcher, and serves HTTP until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := WriteHTML(ctx, s.store, s.cfg.HTMLPath, s.cfg.RunLimit); err != nil {
		return err
	}

	watcher := watch.New(s.store.DB, watch.Options{
		Interval: time.Second,
		Debounce: 500 * time.Millisecond,
		Logger:   s.log,
	})
	go watcher.OnChange(ctx, func() error {
		return WriteHTML(ctx, s.store, s.cfg.HTMLPath, s.cfg.RunLimit)
	})

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("dashboard serving", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard: serve: %w", err)
	}
	return nil
}
