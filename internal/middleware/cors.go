package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"eduverse/backend/internal/logging"
)

// corsOptions maps the configured origin list onto go-chi/cors options.
// An empty list or a "*" entry opens the API to any origin; browsers reject
// credentialed responses carrying a wildcard origin, so credentials are only
// allowed for an explicit list.
func corsOptions(allowedOrigins []string) cors.Options {
	wildcard := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		allowedOrigins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}

// CORS applies the origin policy built by corsOptions.
func CORS(allowedOrigins []string, log *zap.Logger) func(http.Handler) http.Handler {
	opts := corsOptions(allowedOrigins)
	logging.Named(log, "cors").Info("cors policy",
		zap.Strings("origins", opts.AllowedOrigins),
		zap.Bool("credentials", opts.AllowCredentials),
	)
	return cors.Handler(opts)
}
