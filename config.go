package jsonutil

import (
	"flag"

	"github.com/pkg/errors"
)

// DefaultMaxDepth bounds the nesting of parsed text and of Go values handed
// to FromGo.
const DefaultMaxDepth = 10000

// Config holds the codec limits.
type Config struct {
	// MaxDepth is the deepest nesting accepted. Zero selects
	// DefaultMaxDepth, a negative value disables the limit.
	MaxDepth int
}

// RegisterFlags registers the config fields with prefix "json.".
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.IntVar(&c.MaxDepth, "json.max-depth", DefaultMaxDepth, "Maximum nesting depth of JSON documents. Negative disables the limit.")
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if c.MaxDepth > 1<<20 {
		return errors.Errorf("json.max-depth %d too large, use a negative value to disable the limit", c.MaxDepth)
	}
	return nil
}

// maxDepth returns the effective limit, 0 meaning unlimited.
func (c Config) maxDepth() int {
	switch {
	case c.MaxDepth == 0:
		return DefaultMaxDepth
	case c.MaxDepth < 0:
		return 0
	default:
		return c.MaxDepth
	}
}
