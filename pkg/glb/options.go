package glb

import "log/slog"

type config struct {
	logger       *slog.Logger
	strictHeader bool
}

// Option configures a Reader or a parse call.
type Option func(*config)

// WithLogger sets the logger receiving chunk traversal events at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrictHeader enables validation of the header version and, for
// seekable sources, of the declared total length.
func WithStrictHeader() Option {
	return func(c *config) {
		c.strictHeader = true
	}
}

func newConfig(opts []Option) config {
	c := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
