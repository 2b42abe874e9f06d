// Package httpserver exposes the Dev Diary JSON API over HTTP.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/and161185/dev-diary/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Pinger reports database liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the handlers delegate to.
type Deps struct {
	Auth     service.AuthService
	Entries  service.EntryService
	Projects service.ProjectService
	Tags     service.TagService
	Insights service.InsightsService
	DB       Pinger
	Cookies  *RefreshCookies
}

// Options tune the router.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	entries  service.EntryService
	projects service.ProjectService
	tags     service.TagService
	insights service.InsightsService
	db       Pinger
	cookies  *RefreshCookies
	log      *zap.Logger
	opts     Options
}

// New constructs the HTTP server with injected services.
func New(d Deps, opts Options, log *zap.Logger) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Server{
		auth:     d.Auth,
		entries:  d.Entries,
		projects: d.Projects,
		tags:     d.Tags,
		insights: d.Insights,
		db:       d.DB,
		cookies:  d.Cookies,
		log:      log,
		opts:     opts,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(s.log))
	r.Use(Recover(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
			r.With(s.RequireAuth).Get("/me", s.handleMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", s.handleListEntries)
				r.Post("/", s.handleCreateEntry)
				r.Get("/{id}", s.handleGetEntry)
				r.Put("/{id}", s.handleUpdateEntry)
				r.Delete("/{id}", s.handleDeleteEntry)
			})
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", s.handleListProjects)
				r.Post("/", s.handleCreateProject)
				r.Get("/{id}", s.handleGetProject)
				r.Put("/{id}", s.handleUpdateProject)
				r.Delete("/{id}", s.handleDeleteProject)
			})
			r.Route("/tags", func(r chi.Router) {
				r.Get("/", s.handleListTags)
				r.Post("/", s.handleCreateTag)
				r.Delete("/{id}", s.handleDeleteTag)
			})
			r.Get("/calendar/month", s.handleCalendarMonth)
			r.Get("/insights/summary", s.handleSummary)
			r.Get("/insights/mood-trend", s.handleMoodTrend)
		})
	})
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Dev Diary API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
