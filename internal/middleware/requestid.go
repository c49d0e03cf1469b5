package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/templui/okrledger/internal/ctxkeys"
)

const RequestIDHeader = "X-Request-ID"

// RequestID ensures every request and response carries a request id.
// An incoming X-Request-ID is kept so ids propagate across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithRequestID(r.Context(), id)))
	})
}
