// Package web serves the HTML surface: registration, login, the task list,
// task CRUD, sharing, profile and CSV export.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmoren/tasklist/internal/auth"
	"github.com/dmoren/tasklist/internal/config"
	"github.com/dmoren/tasklist/internal/metrics"
	"github.com/dmoren/tasklist/internal/store"
)

type server struct {
	store *store.Store
	cfg   config.Config
}

// NewRouter builds the full route tree. Session-cookie auth guards
// everything except register, login, metrics and the health probe.
func NewRouter(s *store.Store, cfg config.Config) http.Handler {
	srv := &server{store: s, cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/register", srv.handleRegisterPage)
	r.Post("/register", srv.handleRegister)
	r.Get("/login", srv.handleLoginPage)
	r.Post("/login", srv.handleLogin)
	r.Method("GET", "/metrics", promhttp.Handler())
	r.Get("/healthz", srv.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s))
		r.Get("/", srv.handleIndex)
		r.Get("/logout", srv.handleLogout)
		r.Get("/profile", srv.handleProfilePage)
		r.Post("/profile", srv.handleProfile)
		r.Post("/add", srv.handleAdd)
		r.Get("/edit/{id}", srv.handleEditPage)
		r.Post("/edit/{id}", srv.handleEdit)
		r.Post("/toggle/{id}", srv.handleToggle)
		r.Post("/delete/{id}", srv.handleDelete)
		r.Get("/share/{id}", srv.handleSharePage)
		r.Post("/share/{id}", srv.handleShare)
		r.Get("/export", srv.handleExport)
	})

	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// taskID parses the {id} path parameter; 0 when malformed, which no stored
// task ever has.
func taskID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
