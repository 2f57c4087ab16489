package arena

// config.go holds the functional-options config layer for Region: initial
// capacity, shrink policy, logger, metrics registry.
//   - All fields are initialised with sensible defaults in defaultConfig().
//   - Options never allocate unless strictly necessary.
//   - The struct itself stays unexported; users influence behaviour only via
//     Option[T], which keeps the surface forward-compatible.
//
// © 2025 movingarena authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	defaultMinCapacity      = 8
	defaultShrinkThreshold  = 0.5 // shrink when live < threshold * capacity
	defaultInitialCapacity  = defaultMinCapacity
)

// Option is the functional option passed to New/WithCapacity. Generic
// because hooks such as WithTeardownObserver below refer to the concrete
// element type T.
type Option[T any] func(*config[T])

type config[T any] struct {
	minCapacity     int
	shrinkThreshold float64

	registry *prometheus.Registry
	logger   *zap.Logger

	// teardownObserver, if set, is invoked for every payload the collector
	// tears down, after the payload's own teardown logic (if any) has run.
	// Useful for tests asserting dead-slot teardown without requiring T
	// itself to expose observable side effects.
	teardownObserver func(T)
}

func defaultConfig[T any]() *config[T] {
	return &config[T]{
		minCapacity:     defaultMinCapacity,
		shrinkThreshold: defaultShrinkThreshold,
		logger:          zap.NewNop(),
	}
}

// WithMetrics enables Prometheus metrics collection for the Region. Passing
// nil disables metrics (the default).
func WithMetrics[T any](reg *prometheus.Registry) Option[T] {
	return func(c *config[T]) {
		c.registry = reg
	}
}

// WithLogger plugs an external zap.Logger. The Region never logs on the
// alloc/get hot path; only collection and growth events are emitted, at
// Debug (ordinary gc()) or Info (growth-triggered) level.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(c *config[T]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMinCapacity overrides the floor the shrink policy will never go below.
// Default 8.
func WithMinCapacity[T any](n int) Option[T] {
	return func(c *config[T]) {
		if n > 0 {
			c.minCapacity = n
		}
	}
}

// WithShrinkThreshold overrides the load factor below which a collection may
// shrink the store. Default 0.5: shrink when live count falls below half of
// capacity.
func WithShrinkThreshold[T any](t float64) Option[T] {
	return func(c *config[T]) {
		if t > 0 && t < 1 {
			c.shrinkThreshold = t
		}
	}
}

// WithTeardownObserver registers a callback invoked once per collected
// payload, after the collector has run the payload's own teardown (if T
// implements one — see Teardown). Intended for tests and diagnostics; the
// callback must not touch the Region.
func WithTeardownObserver[T any](fn func(T)) Option[T] {
	return func(c *config[T]) {
		c.teardownObserver = fn
	}
}

func applyOptions[T any](cfg *config[T], opts []Option[T]) {
	for _, opt := range opts {
		opt(cfg)
	}
}
