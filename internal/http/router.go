package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"eduverse/backend/internal/config"
	"eduverse/backend/internal/middleware"
)

type RouterDeps struct {
	Cfg       config.Config
	Log       *zap.Logger
	ProjectID string
}

type health struct {
	Project string `json:"project"`
	TS      string `json:"ts"`
}

// NewRouter builds the HTTP shell. Feature handlers mount onto the returned
// router; only the health probe lives here.
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.CORS(d.Cfg.Server.AllowedOrigins, d.Log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		Fail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		OK(w, "ok", health{
			Project: d.ProjectID,
			TS:      time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}
