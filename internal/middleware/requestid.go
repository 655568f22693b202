package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/paymentops/connecthub/internal/ctxkeys"
)

// RequestID attaches a correlation ID to each request, honoring one
// supplied by a proxy in X-Request-ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(ctxkeys.WithRequestID(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}
