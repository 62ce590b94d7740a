// SPDX-License-Identifier: MIT

// Functional configuration for the conformal predictor.
//
//   - Option mutates internal options; New applies them in order.
//   - WithX constructors panic only on nonsensical values (programmer error).
//   - Defaults live in constants below.

package cp

import (
	"io"
	"log/slog"
	"math"
)

// DefaultSmooth selects the non-smoothed p-value formula.
const DefaultSmooth = false

const (
	panicEpsilonNaN = "cp: WithEpsilon: epsilon must not be NaN"
	panicNilRand    = "cp: WithRand: random source must not be nil"
)

// Option configures a CP at construction time.
type Option func(*options)

type options struct {
	epsilon    float64
	hasEpsilon bool
	smooth     bool
	rand       RandSource
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		smooth: DefaultSmooth,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithEpsilon sets the significance level used by Predict.
// Conventional values lie in (0,1); the range is not enforced.
func WithEpsilon(epsilon float64) Option {
	if math.IsNaN(epsilon) {
		panic(panicEpsilonNaN)
	}
	return func(o *options) {
		o.epsilon = epsilon
		o.hasEpsilon = true
	}
}

// WithSmoothing selects smoothed p-values: (a + r·b)/n with r ~ U[0,1).
// It requires a random source (WithRand or WithSeed); without one,
// PredictConfidence fails with ErrNotImplemented.
func WithSmoothing() Option {
	return func(o *options) { o.smooth = true }
}

// WithRand injects the random source used for smoothing. A fresh draw is taken
// for every (label, object) p-value.
func WithRand(r RandSource) Option {
	if r == nil {
		panic(panicNilRand)
	}
	return func(o *options) { o.rand = r }
}

// WithSeed injects a deterministic math/rand source seeded with seed
// (seed==0 maps to a fixed default seed).
func WithSeed(seed int64) Option {
	return func(o *options) { o.rand = rngFromSeed(seed) }
}

// WithLogger routes debug logs to l. A nil logger keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
