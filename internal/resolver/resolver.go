// Package resolver maps a decoded code to product metadata through an
// ordered chain of external catalogs.
package resolver

import (
	"context"
	"time"

	"barcode-scanner/internal/model"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each individual source request.
const DefaultTimeout = 5 * time.Second

// Source is one external catalog. Lookup returns the mapped product on a
// hit, (nil, nil) on a well-formed "not found" response, and an error only
// for transport or parse failures.
type Source interface {
	Name() string
	Lookup(ctx context.Context, code string) (*model.ProductInfo, error)
}

// Chain tries each source in order and stops at the first hit. Failures are
// data here: a broken source is logged and skipped, never surfaced to the
// caller. The chain is stateless and does no caching; suppressing repeat
// lookups is the gate's job.
type Chain struct {
	sources []Source
	timeout time.Duration
	logger  zerolog.Logger
}

// NewChain creates a resolver over the given sources. Order matters: earlier
// sources win. A non-positive timeout falls back to DefaultTimeout.
func NewChain(sources []Source, timeout time.Duration, logger zerolog.Logger) *Chain {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{
		sources: sources,
		timeout: timeout,
		logger:  logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve walks the chain for one code. It always returns a usable value:
// if every source fails or misses, the result is the not-found terminal.
// Worst-case latency is len(sources) × timeout, since sources are consulted
// strictly in sequence.
func (c *Chain) Resolve(ctx context.Context, code string) model.ProductInfo {
	for _, src := range c.sources {
		info, err := c.lookup(ctx, src, code)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("code", code).
				Msg("source lookup failed, trying next")
			continue
		}
		if info == nil {
			c.logger.Debug().
				Str("source", src.Name()).
				Str("code", code).
				Msg("code not found in source")
			continue
		}

		c.logger.Info().
			Str("source", src.Name()).
			Str("code", code).
			Str("name", info.Name).
			Msg("product resolved")
		return *info
	}

	return model.NotFound(code)
}

func (c *Chain) lookup(ctx context.Context, src Source, code string) (*model.ProductInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return src.Lookup(ctx, code)
}
