package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bowerassets/pkg/observability"
)

// logHooks reports build and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnResolveStart(_ context.Context, bundle string) {
	h.logger.Debug("resolving bundle", "bundle", bundle)
}

func (h logHooks) OnResolveComplete(_ context.Context, bundle string, packageCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("bundle not resolved", "bundle", bundle, "err", err)
		return
	}
	h.logger.Debug("bundle resolved", "bundle", bundle, "packages", packageCount, "elapsed", d.Round(time.Microsecond))
}

func (h logHooks) OnFormulaeBuilt(_ context.Context, formulaCount int, d time.Duration) {
	h.logger.Debug("formulae built", "count", formulaCount, "elapsed", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.BuildHooks = logHooks{}
	_ observability.CacheHooks = logHooks{}
)
