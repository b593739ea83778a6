package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/quintrical/internal/middleware"
)

// Logging tags each API request with an ID and logs it on completion
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	requestID := middleware.RequestID()
	logging := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}
