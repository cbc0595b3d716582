package router

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zoodb/zoodb/pkg/history"
)

// Option configures a Router.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	scroller history.Scroller
	tracer   trace.Tracer
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithScroller sets the scroller used when navigation asks to scroll to the
// top. When unset, the history is used if it implements history.Scroller.
func WithScroller(s history.Scroller) Option {
	return func(c *config) {
		c.scroller = s
	}
}

// WithTracer sets the tracer for navigation spans. Defaults to the tracer
// named "zoodb/router" from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

func newConfig(h history.History, opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "router")
	if c.scroller == nil {
		if s, ok := h.(history.Scroller); ok {
			c.scroller = s
		}
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("zoodb/router")
	}
	return c
}
