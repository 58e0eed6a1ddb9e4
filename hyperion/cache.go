package hyperion

import "sync"

// CachedSource wraps a Source and keeps the first successfully loaded copy of
// each table. Callers always receive their own deep copy. Safe for concurrent use.
type CachedSource struct {
	inner Source

	mu         sync.Mutex
	bands      *BandTable
	irradiance *IrradianceTable
}

// NewCachedSource creates a memoizing decorator around a Source.
func NewCachedSource(inner Source) *CachedSource {
	return &CachedSource{inner: inner}
}

// Bands returns a copy of the memoized coverage table, loading it on first use.
func (c *CachedSource) Bands() (BandTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bands == nil {
		t, err := c.inner.Bands()
		if err != nil {
			// Not cached, so a later call retries the load.
			return BandTable{}, err
		}
		c.bands = &t
	}
	return c.bands.Clone(), nil
}

// Irradiance returns a copy of the memoized irradiance table, loading it on
// first use.
func (c *CachedSource) Irradiance() (IrradianceTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.irradiance == nil {
		t, err := c.inner.Irradiance()
		if err != nil {
			return IrradianceTable{}, err
		}
		c.irradiance = &t
	}
	return c.irradiance.Clone(), nil
}
