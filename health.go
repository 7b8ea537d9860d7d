package annuaire

import (
	"sync"
	"time"
)

// Health is a point-in-time summary of the resolved set, cheap enough to
// serve on every probe once cached.
type Health struct {
	Source        SourceID  `json:"source"`
	BusinessCount int       `json:"businessCount"`
	EnrichedCount int       `json:"enrichedCount"`
	ResolvedAt    time.Time `json:"resolvedAt"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// HealthCache memoizes a Directory health summary for a TTL. The clock is
// injected so expiry is testable without sleeping. Owned by the caller;
// there is deliberately no package-level instance.
type HealthCache struct {
	dir *Directory
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	value     Health
	checkedAt time.Time
	valid     bool
}

// NewHealthCache builds a cache over dir with the given TTL. A nil clock
// defaults to time.Now.
func NewHealthCache(dir *Directory, ttl time.Duration, now func() time.Time) *HealthCache {
	if now == nil {
		now = time.Now
	}
	return &HealthCache{dir: dir, ttl: ttl, now: now}
}

// Get returns the cached summary, recomputing it when the TTL has lapsed.
func (hc *HealthCache) Get() Health {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	t := hc.now()
	if hc.valid && t.Sub(hc.checkedAt) < hc.ttl {
		return hc.value
	}

	hc.value = hc.compute(t)
	hc.checkedAt = t
	hc.valid = true
	return hc.value
}

// Invalidate drops the cached value; the next Get recomputes.
func (hc *HealthCache) Invalidate() {
	hc.mu.Lock()
	hc.valid = false
	hc.mu.Unlock()
}

func (hc *HealthCache) compute(t time.Time) Health {
	enriched := 0
	for _, b := range hc.dir.Businesses() {
		if b.HasEnrichedData {
			enriched++
		}
	}
	return Health{
		Source:        hc.dir.Source(),
		BusinessCount: hc.dir.Len(),
		EnrichedCount: enriched,
		ResolvedAt:    hc.dir.ResolvedAt(),
		CheckedAt:     t,
	}
}
