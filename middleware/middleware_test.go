package middleware

import (
	"context"
	"testing"
	"time"

	"aerowire/protocol"
)

func echoHandler(ctx context.Context, req Request) (Response, error) {
	return Response{Header: &protocol.Header{Kind: req.Kind}, Body: req.Body}, nil
}

func TestChainOrdersOutermostFirst(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, req Request) (Response, error) {
				order = append(order, name+":before")
				resp, err := next(ctx, req)
				order = append(order, name+":after")
				return resp, err
			}
		}
	}

	chain := Chain(record("A"), record("B"))
	handler := chain(echoHandler)
	if _, err := handler(context.Background(), Request{Kind: protocol.KindMessage}); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	want := []string{"A:before", "B:before", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("order mismatch: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestTimeoutMiddlewareReturnsErrorWhenHandlerHangs(t *testing.T) {
	slow := func(ctx context.Context, req Request) (Response, error) {
		<-ctx.Done()
		return Response{}, ctx.Err()
	}
	handler := TimeoutMiddleware(10 * time.Millisecond)(slow)

	_, err := handler(context.Background(), Request{Kind: protocol.KindMessage})
	if err == nil {
		t.Fatal("expected a timeout error, got nil")
	}
}

func TestTimeoutMiddlewarePassesThroughFastHandler(t *testing.T) {
	handler := TimeoutMiddleware(time.Second)(echoHandler)

	body := []byte("fast")
	resp, err := handler(context.Background(), Request{Kind: protocol.KindMessage, Body: body})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if string(resp.Body) != "fast" {
		t.Errorf("body mismatch: got %q", resp.Body)
	}
}

func TestThrottleMiddlewareFailsOnlyOnContextDeadline(t *testing.T) {
	handler := ThrottleMiddleware(1000, 1)(echoHandler)

	ctx := context.Background()
	if _, err := handler(ctx, Request{Kind: protocol.KindMessage}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	ctx2, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	// A burst of 1 token refilling at 1000/s: the very next call within
	// a 1ms deadline may or may not find a token ready depending on
	// scheduling, but it must never error with anything other than a
	// context deadline — it must not panic or block forever.
	_, err := handler(ctx2, Request{Kind: protocol.KindMessage})
	if err != nil && ctx2.Err() == nil {
		t.Errorf("unexpected error unrelated to context deadline: %v", err)
	}
}

func TestLoggingMiddlewarePassesThroughResult(t *testing.T) {
	handler := LoggingMiddleware()(echoHandler)
	body := []byte("payload")
	resp, err := handler(context.Background(), Request{Kind: protocol.KindAdmin, Body: body})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if string(resp.Body) != "payload" {
		t.Errorf("body mismatch: got %q", resp.Body)
	}
}
