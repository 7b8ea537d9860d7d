package annuaire

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Config holds the knobs for building a Directory.
type dirConfig struct {
	apiBaseURL string
	csvPath    string
	httpClient *http.Client
	readers    []Reader
	now        func() time.Time
}

// Option is a functional option for configuring a Directory.
type Option func(*dirConfig)

// WithAPIBaseURL sets the remote API base URL tried first in the chain.
func WithAPIBaseURL(u string) Option {
	return func(c *dirConfig) { c.apiBaseURL = u }
}

// WithCSVPath sets the bundled snapshot path tried second in the chain.
func WithCSVPath(p string) Option {
	return func(c *dirConfig) { c.csvPath = p }
}

// WithHTTPClient overrides the HTTP client used by the API reader.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *dirConfig) { c.httpClient = hc }
}

// WithReaders replaces the whole fallback chain. Readers are tried in the
// given order. Intended for tests and embedding.
func WithReaders(readers ...Reader) Option {
	return func(c *dirConfig) { c.readers = readers }
}

// WithClock injects the time source used for resolution timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *dirConfig) { c.now = now }
}

func defaultDirConfig() *dirConfig {
	return &dirConfig{
		csvPath: "data/businesses.csv",
		now:     time.Now,
	}
}

// resolvedSet is one immutable outcome of the fallback chain. Queries read a
// snapshot pointer, so a concurrent Refresh never disturbs an in-flight query.
type resolvedSet struct {
	businesses []Business
	byID       map[string]int
	source     SourceID
	resolvedAt time.Time
}

// Directory owns the canonical business set for one application session.
// All query methods are safe for concurrent use; the underlying set is only
// ever replaced wholesale by Refresh, never mutated in place.
type Directory struct {
	cfg     *dirConfig
	readers []Reader

	mu  sync.RWMutex
	set *resolvedSet
}

// New builds a Directory and runs the resolution chain once: remote API,
// then CSV snapshot, then the static fallback. Exactly one source backs the
// resolved set; partial results are never merged across sources. The only
// error is ErrNoUsableSource, a fatal misconfiguration.
func New(ctx context.Context, opts ...Option) (*Directory, error) {
	cfg := defaultDirConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	readers := cfg.readers
	if readers == nil {
		readers = []Reader{
			NewAPIReader(cfg.apiBaseURL, cfg.httpClient),
			NewCSVReader(cfg.csvPath),
			NewStaticReader(),
		}
	}

	d := &Directory{cfg: cfg, readers: readers}
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh re-runs the full fallback chain from the top and atomically swaps
// in the new set. On error the previous set, if any, stays in place.
func (d *Directory) Refresh(ctx context.Context) error {
	set, err := d.resolve(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.set = set
	d.mu.Unlock()
	return nil
}

// resolve tries each reader strictly in order and normalizes the first
// non-empty result. Reader-level errors are absorbed here and logged; they
// never reach query callers.
func (d *Directory) resolve(ctx context.Context) (*resolvedSet, error) {
	for _, r := range d.readers {
		entries, err := r.Read(ctx)
		if err != nil {
			log.Printf("annuaire: %s source unusable, falling back: %v", r.Source(), err)
			continue
		}
		if len(entries) == 0 {
			log.Printf("annuaire: %s source returned no entries, falling back", r.Source())
			continue
		}

		set := d.normalizeAll(entries, r.Source())
		if len(set.businesses) == 0 {
			// Every entry was missing its id or name.
			log.Printf("annuaire: %s source had no normalizable entries, falling back", r.Source())
			continue
		}
		log.Printf("annuaire: resolved %d businesses from %s source", len(set.businesses), set.source)
		return set, nil
	}
	return nil, fmt.Errorf("%w: all readers exhausted", ErrNoUsableSource)
}

// normalizeAll classifies and normalizes raw entries, dropping entries
// without the required fields and keeping the first occurrence of each id.
func (d *Directory) normalizeAll(entries []RawEntry, source SourceID) *resolvedSet {
	set := &resolvedSet{
		businesses: make([]Business, 0, len(entries)),
		byID:       make(map[string]int, len(entries)),
		source:     source,
		resolvedAt: d.cfg.now(),
	}
	for _, e := range entries {
		name, typeTags, query, address := signals(e)
		b, ok := Normalize(e, Classify(name, typeTags, query, address))
		if !ok {
			continue
		}
		if _, dup := set.byID[b.ID]; dup {
			continue
		}
		set.byID[b.ID] = len(set.businesses)
		set.businesses = append(set.businesses, b)
	}
	return set
}

func (d *Directory) snapshot() *resolvedSet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.set
}

// Businesses returns the canonical set. The returned slice is shared and
// must be treated as read-only.
func (d *Directory) Businesses() []Business {
	return d.snapshot().businesses
}

// Source reports which reader backed the current set; operators can reason
// about data quality from this alone.
func (d *Directory) Source() SourceID {
	return d.snapshot().source
}

// Len returns the number of canonical records.
func (d *Directory) Len() int {
	return len(d.snapshot().businesses)
}

// ResolvedAt returns when the current set was built.
func (d *Directory) ResolvedAt() time.Time {
	return d.snapshot().resolvedAt
}
