package providers

import "medreminder/internal/structures"

// instrumentedCache counts lookups by outcome and the purges issued by
// list mutations.
type instrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
		return val, true
	}
	c.metrics.IncCacheMisses()
	return nil, false
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Purge() {
	c.inner.Purge()
	c.metrics.IncCachePurges()
}

// NewInstrumentedCacheProvider returns the response cache with metrics. A
// disabled cache stays unwrapped so it reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &instrumentedCache{inner: inner, metrics: metrics}
}
