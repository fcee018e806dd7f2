package hdwallet

import (
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

type options struct {
	derive DeriveFunc
	clock  clock.Clock
	logger *zap.Logger
}

// Option customizes how chains and accounts derive keys, read time and log.
type Option func(*options)

// WithDeriveFunc replaces the BIP32 child derivation.
func WithDeriveFunc(derive DeriveFunc) Option {
	return func(o *options) {
		if derive != nil {
			o.derive = derive
		}
	}
}

// WithClock sets the clock used to stamp keys derived by margin top-ups.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		derive: DeriveChild,
		clock:  clock.NewDefaultClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
