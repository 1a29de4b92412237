// ABOUTME: Course site HTTP server: homepage lesson list, lesson pages, health, and static assets behind chi.
// ABOUTME: The lesson catalog is re-read on every request so content edits show up without a restart.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/habeetat/corso/config"
	"github.com/habeetat/corso/lesson"
	"github.com/habeetat/corso/render"
)

// DocumentRenderer turns a lesson's Markdown body into HTML.
type DocumentRenderer interface {
	Render(ctx context.Context, source []byte) (render.Document, error)
}

// Server is the course site HTTP server.
type Server struct {
	site      config.Config
	fs        afero.Fs
	catalog   *lesson.Catalog
	docs      DocumentRenderer
	templates *TemplateEngine
	logger    *zap.SugaredLogger
	router    chi.Router
}

// ServerConfig holds the configuration for the site server.
type ServerConfig struct {
	Site     config.Config
	Fs       afero.Fs           // content and public files; defaults to the OS filesystem
	Logger   *zap.SugaredLogger // defaults to a no-op logger
	Renderer DocumentRenderer   // defaults to a cached goldmark renderer
}

// defaultRenderTTL bounds how long a rendered lesson body is reused.
const defaultRenderTTL = 5 * time.Minute

// NewServer creates a Server with the given configuration and sets up routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.Site.Validate(); err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.NewRenderCache(render.NewMarkdown().Render, defaultRenderTTL)
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		site: cfg.Site,
		fs:   cfg.Fs,
		catalog: lesson.New(
			lesson.WithFs(cfg.Fs),
			lesson.WithDir(cfg.Site.ContentDir),
			lesson.WithLogger(cfg.Logger.Named("catalog")),
		),
		docs:      cfg.Renderer,
		templates: tmpl,
		logger:    cfg.Logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

// Catalog returns the lesson catalog the server reads.
func (s *Server) Catalog() *lesson.Catalog {
	return s.catalog
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.site.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("serving course site", "addr", s.site.Addr, "content_dir", s.site.ContentDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Infow("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/lesson/{slug}", s.handleLesson)

	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		s.logger.Warnw("static assets unavailable", "error", err)
	} else {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Anything else is looked up in the public directory before giving up.
	r.NotFound(s.handlePublic)

	return r
}

// handleHome renders the homepage with the numbered lesson list.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Render(w, http.StatusOK, pageHome, s.homeData()); err != nil {
		s.logger.Errorw("rendering home", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleLesson renders one lesson page, or the 404 page for an unknown slug.
func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	data, err := s.lessonData(r.Context(), slug)
	if errors.Is(err, lesson.ErrNotFound) {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		s.logger.Errorw("preparing lesson", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.templates.Render(w, http.StatusOK, pageLesson, data); err != nil {
		s.logger.Errorw("rendering lesson", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleHealth returns a JSON health check with the current lesson count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"lessons": len(s.catalog.List()),
	})
}

// handlePublic serves a file from the public directory, falling back to the
// 404 page. Directories are never listed.
func (s *Server) handlePublic(w http.ResponseWriter, r *http.Request) {
	if s.site.PublicDir != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		name := path.Clean("/" + r.URL.Path)
		public := afero.NewBasePathFs(s.fs, s.site.PublicDir)
		if info, err := public.Stat(name); err == nil && !info.IsDir() {
			http.FileServer(afero.NewHttpFs(public)).ServeHTTP(w, r)
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Debugw("public lookup", "path", name, "error", err)
		}
	}
	s.renderNotFound(w)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	if err := s.templates.Render(w, http.StatusNotFound, pageNotFound, s.notFoundData()); err != nil {
		s.logger.Errorw("rendering not found page", "error", err)
		http.Error(w, "not found", http.StatusNotFound)
	}
}
