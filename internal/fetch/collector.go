package fetch

import (
	"context"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/internal/signals"
	"github.com/tomvannes/riskpulse/pkg/config"
	"github.com/tomvannes/riskpulse/pkg/httputil"
	"github.com/tomvannes/riskpulse/pkg/logger"
	"github.com/tomvannes/riskpulse/pkg/redis"
)

// Collector resolves every tracked signal to a RawValue. Each live
// source is individually wrapped: a failure resolves to Absent with a
// warning, never an error to the engine. Fetched values are cached
// with a TTL so repeated evaluations within the window reuse them.
type Collector struct {
	http   *httputil.Client
	cache  *redis.Cache
	cfg    *config.Config
	logger *logger.Logger
}

// NewCollector creates a new collector.
func NewCollector(httpClient *httputil.Client, cache *redis.Cache, cfg *config.Config, log *logger.Logger) *Collector {
	return &Collector{
		http:   httpClient,
		cache:  cache,
		cfg:    cfg,
		logger: log,
	}
}

// Collect resolves all signals. Operator-set inputs come straight from
// config; live sources go through the TTL cache.
func (c *Collector) Collect(ctx context.Context) map[string]contracts.RawValue {
	values := map[string]contracts.RawValue{
		signals.CapexGrowth:       contracts.Num(c.cfg.Signals.CapexGrowth),
		signals.USDReserveShare:   contracts.Num(c.cfg.Signals.USDReserveShare),
		signals.ChinaUSTension:    contracts.Cat(c.cfg.Signals.ChinaUSTension),
		signals.CriticalResources: contracts.Cat(c.cfg.Signals.CriticalResources),
		signals.UkraineEscalation: contracts.Cat(c.cfg.Signals.UkraineEscalation),
	}

	values[signals.NvidiaPE] = c.resolve(ctx, "nvda_pe", c.fetchTrailingPE)
	values[signals.YieldSpread] = c.resolve(ctx, "yield_spread", c.fetchYieldSpread)
	values[signals.VIX] = c.resolve(ctx, "vix", c.fetchVIX)
	values[signals.AIFundFlows] = c.resolve(ctx, "ai_flows", c.fetchFundFlows)
	values[signals.DefenseSpending] = c.resolve(ctx, "def_spend", c.fetchDefenseTrend)

	return values
}

// resolve answers from the cache when possible, otherwise fetches and
// caches the result. Fetch failures resolve to Absent.
func (c *Collector) resolve(ctx context.Context, key string, fetch func(context.Context) (contracts.RawValue, error)) contracts.RawValue {
	var cached contracts.RawValue
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found && !cached.IsAbsent() {
		return cached
	}

	value, err := fetch(ctx)
	if err != nil {
		c.logger.WithError(err).WithField("signal", key).Warn("Source unavailable, resolving absent")
		return contracts.Absent()
	}

	if err := c.cache.Set(ctx, key, value, c.cfg.Fetch.CacheTTL); err != nil {
		c.logger.WithError(err).WithField("signal", key).Warn("Could not cache value")
	}

	return value
}
