package middleware

import "net/http"

// Middleware wraps a handler. Global middleware are applied with Chain.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so the middlewares run in the order given. Nil entries are
// skipped so optional middleware can be passed inline.
//
// Example:
//
//	handler := Chain(mux,
//	    RequestID,                    // runs first
//	    AuthMiddleware(authService),  // resolves the actor
//	    RequestLogging,               // logs with request id and actor
//	)
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		h = middlewares[i](h)
	}
	return h
}
