package middleware

import (
	"context"
	"log"
	"time"
)

// LoggingMiddleware records the frame kind, duration, and any error for
// each exchange. It captures the start time before calling next, and
// logs the elapsed time after next returns.
//
// Example output:
//
//	Kind: 3, Duration: 42µs
func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			duration := time.Since(start)
			log.Printf("Kind: %d, Duration: %s", req.Kind, duration)
			if err != nil {
				log.Printf("Error: %s", err)
			}
			return resp, err
		}
	}
}
