package warehouse

import (
	"time"

	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	now func() time.Time
	log *zap.Logger
}

// WithClock replaces time.Now as the source of modification and
// current-month timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
