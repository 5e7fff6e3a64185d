// Package zconfig centralizes the boolean feature switches spec.md lists
// across §6 ("Configuration options") and §7 ("disable-bounds-check",
// "disable-vectorized-equals", ...), following the teacher's
// functional-options Config/Option pattern (internal/allocator.Config).
package zconfig

import (
	"os"
	"strconv"
)

// Config holds the engine-wide feature switches. A zero-value Config is
// the safe, fully-checked default.
type Config struct {
	BoundsCheckDisabled         bool
	VectorizedEqualsDisabled    bool
	SingleThreadedCheckDisabled bool
	ResourceTracing             bool
	LeakCheck                   bool
}

// Option mutates a Config.
type Option func(*Config)

// Default returns the safe, fully-checked configuration.
func Default() *Config {
	return &Config{}
}

// New builds a Config from the given options, starting from Default().
func New(opts ...Option) *Config {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBoundsCheckDisabled(v bool) Option {
	return func(c *Config) { c.BoundsCheckDisabled = v }
}

func WithVectorizedEqualsDisabled(v bool) Option {
	return func(c *Config) { c.VectorizedEqualsDisabled = v }
}

func WithSingleThreadedCheckDisabled(v bool) Option {
	return func(c *Config) { c.SingleThreadedCheckDisabled = v }
}

func WithResourceTracing(v bool) Option {
	return func(c *Config) { c.ResourceTracing = v }
}

func WithLeakCheck(v bool) Option {
	return func(c *Config) { c.LeakCheck = v }
}

// LoadFromEnv builds a Config from ZBYTES_-prefixed environment
// variables (e.g. ZBYTES_BOUNDS_CHECK_DISABLE=1), falling back to the
// safe defaults for anything unset or unparsable.
func LoadFromEnv() *Config {
	c := Default()
	c.BoundsCheckDisabled = getBoolEnv("ZBYTES_BOUNDS_CHECK_DISABLE", c.BoundsCheckDisabled)
	c.VectorizedEqualsDisabled = getBoolEnv("ZBYTES_VECTORIZED_CONTENT_EQUALS_DISABLE", c.VectorizedEqualsDisabled)
	c.SingleThreadedCheckDisabled = getBoolEnv("ZBYTES_SINGLE_THREADED_CHECK_DISABLE", c.SingleThreadedCheckDisabled)
	c.ResourceTracing = getBoolEnv("ZBYTES_RESOURCE_TRACING", c.ResourceTracing)
	c.LeakCheck = getBoolEnv("ZBYTES_LEAK_CHECK", c.LeakCheck)
	return c
}

func getBoolEnv(name string, fallback bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
