package middleware

import (
	"context"
	"fmt"
	"time"
)

// TimeoutMiddleware bounds each exchange to timeout. If the handler
// doesn't complete in time, the derived context's cancellation
// propagates down to the connection, which poisons itself per its
// close-and-reconnect policy, and this middleware returns promptly
// with a timeout error.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type result struct {
				resp Response
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp: resp, err: err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				return Response{}, fmt.Errorf("middleware: exchange timed out after %s", timeout)
			}
		}
	}
}
