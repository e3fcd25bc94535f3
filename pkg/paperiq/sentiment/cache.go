package sentiment

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds CachedOracle when no size is given.
const DefaultCacheSize = 4096

// CachedOracle memoises readings of an underlying Oracle by exact span text.
// Failures are not cached. It is safe for concurrent use.
type CachedOracle struct {
	next  Oracle
	cache *lru.Cache[string, Reading]
}

// Cached wraps next with an LRU cache holding up to size readings.
func Cached(next Oracle, size int) (*CachedOracle, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Reading](size)
	if err != nil {
		return nil, err
	}
	return &CachedOracle{next: next, cache: cache}, nil
}

// PolarityAndSubjectivity implements Oracle.
func (c *CachedOracle) PolarityAndSubjectivity(ctx context.Context, text string) (float64, float64, error) {
	if r, ok := c.cache.Get(text); ok {
		return r.Polarity, r.Subjectivity, nil
	}
	pol, subj, err := c.next.PolarityAndSubjectivity(ctx, text)
	if err != nil {
		return 0, 0, err
	}
	c.cache.Add(text, Reading{Polarity: pol, Subjectivity: subj})
	return pol, subj, nil
}

// Len reports the number of cached readings.
func (c *CachedOracle) Len() int { return c.cache.Len() }
