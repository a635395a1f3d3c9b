package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS allows browser clients from the given origins. "*" allows any origin;
// credentials are only allowed for an explicit origin list.
func CORS(allowedOrigins []string, logger *slog.Logger) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	wildcard := slices.Contains(allowedOrigins, "*")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: !wildcard,
	})

	logger.Info("cors configured",
		slog.Any("allowed_origins", allowedOrigins),
		slog.Bool("allow_credentials", !wildcard),
	)

	return c.Handler
}
