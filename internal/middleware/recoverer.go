package middleware

import (
	"net/http"
	"runtime/debug"

	"notifysvc/internal/logger"
	"notifysvc/internal/metrics"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				metrics.RecordPanic()
				logger.Error().
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Msg("panic recovered")

				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
