package client

import (
	"crypto/tls"
	"time"

	"golang.org/x/time/rate"

	"aerowire/middleware"
)

// Config holds everything needed to dial and authenticate a Connection.
// Build one with NewConfig and any number of Option values.
type Config struct {
	Host string
	Port int

	User     string
	Password string

	TLSConfig *tls.Config // nil disables TLS

	DialTimeout time.Duration

	// RequestLimiter, when non-nil, is waited on before every exchange.
	// Set via WithRequestThrottle.
	RequestLimiter *rate.Limiter

	// Middlewares wrap every exchange, outermost first. Set via
	// WithMiddleware.
	Middlewares []middleware.Middleware
}

// Option configures a Config.
type Option func(*Config)

// NewConfig builds a Config for the given host and port, then applies
// opts in order.
func NewConfig(host string, port int, opts ...Option) *Config {
	cfg := &Config{
		Host:        host,
		Port:        port,
		DialTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithCredentials sets the user and password used by Connection.Login.
func WithCredentials(user, password string) Option {
	return func(c *Config) {
		c.User = user
		c.Password = password
	}
}

// WithTLSConfig enables TLS using the given configuration. TLS wrapping
// is acknowledged by the wire protocol but never required by the core
// driver — a nil Config here (the default) dials a plain TCP socket.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Config) {
		c.TLSConfig = tlsConfig
	}
}

// WithDialTimeout overrides the default 10-second dial timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.DialTimeout = d
	}
}

// WithRequestThrottle self-throttles outgoing requests on a connection
// so a single caller does not hammer a node: r is the refill rate in
// requests per second, burst the number of requests allowed back to
// back before pacing kicks in.
func WithRequestThrottle(r float64, burst int) Option {
	return func(c *Config) {
		c.RequestLimiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithMiddleware installs middleware wrapping every exchange, outermost
// first — see the middleware package for Logging, Timeout, and Throttle.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mws...)
	}
}
