package callback

import "log/slog"

type options struct {
	logger *slog.Logger
	name   string
}

// Option configures a Sink.
type Option func(*options)

// WithLogger sets the logger used for connection bookkeeping and listener
// failures. Sinks are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName labels log records with the sink name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(opts ...Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name != "" {
		o.logger = o.logger.With(slog.String("sink", o.name))
	}
	return o
}
