// Package middleware implements the onion model middleware chain around
// a single request/response exchange on a client.Connection.
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Request:   A.before → B.before → C.before → handler
//	Response:  handler → C.after → B.after → A.after
//
// Each middleware can:
//   - Do pre-processing (before calling next)
//   - Call next(ctx, req) to pass to the next layer
//   - Do post-processing (after next returns)
//   - Short-circuit by returning early without calling next (e.g., throttling)
package middleware

import (
	"context"

	"aerowire/protocol"
)

// Request is the framed kind+body a handler writes to the connection.
type Request struct {
	Kind protocol.Kind
	Body []byte
}

// Response is the framed kind+body a handler reads back.
type Response struct {
	Header *protocol.Header
	Body   []byte
}

// HandlerFunc performs, or forwards to the next layer, one exchange.
type HandlerFunc func(ctx context.Context, req Request) (Response, error)

// Middleware takes a handler and returns a new handler that wraps it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into a single middleware.
// It builds the chain from right to left so that the first middleware in
// the list is the outermost layer (executed first on request, last on
// response).
//
// Example:
//
//	chain := Chain(LoggingMiddleware(), TimeoutMiddleware(time.Second))
//	handler := chain(exchangeHandler)
//	// Execution: Logging → Timeout → exchangeHandler → Timeout → Logging
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
