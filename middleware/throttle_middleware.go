package middleware

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottleMiddleware paces outgoing exchanges through a token-bucket
// limiter before calling next. A server-side rate limiter can reject a
// request outright when its bucket is empty, but a client has no one
// to push back to, so this blocks until a token is available (or ctx
// is cancelled) rather than erroring the caller's request.
//
// r is the refill rate in requests per second; burst is the bucket
// size, the number of requests this connection may send back-to-back
// before pacing kicks in.
func ThrottleMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return Response{}, err
			}
			return next(ctx, req)
		}
	}
}
