// Package client implements the request builders and the single-connection
// driver that turns them into a framed write followed by a framed read.
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"aerowire/message"
	"aerowire/middleware"
	"aerowire/protocol"
)

// Connection owns one TCP stream to the server. It is not reentrant:
// the wire protocol carries no request correlation id, so a second
// exchange must never begin its write before the first has finished
// reading its response. exchangeMu enforces that serialization.
type Connection struct {
	cfg  *Config
	conn net.Conn

	exchangeMu sync.Mutex
	poisoned   bool

	decompressor protocol.Decompressor
	handler      middleware.HandlerFunc
}

// NewConnection returns an unconnected Connection for cfg. Call Connect
// before issuing any verb. When cfg.Middlewares is non-empty, every
// exchange is routed through middleware.Chain(cfg.Middlewares...)
// wrapped around the raw frame write/read.
func NewConnection(cfg *Config) *Connection {
	c := &Connection{cfg: cfg, decompressor: protocol.NewZlibDecompressor()}
	c.handler = c.rawExchange
	if len(cfg.Middlewares) > 0 {
		c.handler = middleware.Chain(cfg.Middlewares...)(c.rawExchange)
	}
	return c
}

// Connect opens the TCP stream (wrapped in TLS when cfg.TLSConfig is
// set) and, if credentials were supplied, performs the login handshake.
func (c *Connection) Connect(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	dialer := &net.Dialer{Timeout: c.cfg.DialTimeout}

	var conn net.Conn
	var err error
	if c.cfg.TLSConfig != nil {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, c.cfg.TLSConfig)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("client: dial %s: %w", addr, err)
	}

	c.conn = conn
	c.poisoned = false

	if c.cfg.User != "" {
		if _, err := c.Login(ctx, c.cfg.User, c.cfg.Password); err != nil {
			conn.Close()
			c.conn = nil
			return err
		}
	}
	return nil
}

// Close closes the underlying stream. The Connection must be
// reconnected with Connect before further use.
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// exchange routes one kind+body frame through the configured middleware
// chain (if any) down to rawExchange.
func (c *Connection) exchange(ctx context.Context, kind protocol.Kind, body []byte) (*protocol.Header, []byte, error) {
	resp, err := c.handler(ctx, middleware.Request{Kind: kind, Body: body})
	if err != nil {
		return nil, nil, err
	}
	return resp.Header, resp.Body, nil
}

// rawExchange writes kind+body as one frame and returns the decoded
// response frame. It holds exchangeMu for the duration of the write and
// the read, which is what makes a single Connection safe to reuse
// across sequential verb calls but never concurrently from two verbs
// at once.
//
// Cancellation policy: if ctx is done after the write has started but
// before the read completes, the connection is marked poisoned and
// closed rather than left with unread bytes that would desynchronize
// the next exchange.
func (c *Connection) rawExchange(ctx context.Context, req middleware.Request) (middleware.Response, error) {
	if c.conn == nil {
		return middleware.Response{}, &NotConnectedError{}
	}

	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	if c.poisoned {
		return middleware.Response{}, &ConnectionPoisonedError{}
	}

	if c.cfg.RequestLimiter != nil {
		if err := c.cfg.RequestLimiter.Wait(ctx); err != nil {
			return middleware.Response{}, err
		}
	}

	type result struct {
		header *protocol.Header
		body   []byte
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		if err := protocol.Encode(c.conn, req.Kind, req.Body); err != nil {
			resultCh <- result{err: fmt.Errorf("client: write request: %w", err)}
			return
		}
		header, respBody, err := protocol.Decode(c.conn)
		resultCh <- result{header: header, body: respBody, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return middleware.Response{}, res.err
		}
		decoded, err := protocol.DecodeBody(res.header, res.body, c.decompressor)
		if err != nil {
			return middleware.Response{}, err
		}
		return middleware.Response{Header: res.header, Body: decoded}, nil
	case <-ctx.Done():
		c.poisoned = true
		c.Close()
		return middleware.Response{}, &ConnectionPoisonedError{}
	}
}

// exchangeOperation sends body as a Message-kind frame and parses the
// response as an operation body.
func (c *Connection) exchangeOperation(ctx context.Context, body message.OperationBody) (message.OperationBody, error) {
	packed, err := body.Pack()
	if err != nil {
		return message.OperationBody{}, err
	}
	_, respBody, err := c.exchange(ctx, protocol.KindMessage, packed)
	if err != nil {
		return message.OperationBody{}, err
	}
	resp, err := message.ParseOperationBody(respBody)
	if err != nil {
		return message.OperationBody{}, err
	}
	if resp.ResultCode != resultCodeOK && resp.ResultCode != resultCodeNotFound {
		return message.OperationBody{}, &ServerError{Code: resp.ResultCode}
	}
	return resp, nil
}

// exchangeAdmin sends body as an Admin-kind frame and parses the
// response as an admin body.
func (c *Connection) exchangeAdmin(ctx context.Context, body message.AdminBody) (message.AdminBody, error) {
	packed := body.Pack()
	_, respBody, err := c.exchange(ctx, protocol.KindAdmin, packed)
	if err != nil {
		return message.AdminBody{}, err
	}
	return message.ParseAdminBody(respBody)
}
