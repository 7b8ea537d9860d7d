package annuaire

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// countingReader instruments the fallback chain: it records how often it was
// consulted and can be primed with entries or an error.
type countingReader struct {
	source  SourceID
	entries []RawEntry
	err     error
	calls   int
}

func (r *countingReader) Source() SourceID { return r.source }
func (r *countingReader) Read(ctx context.Context) ([]RawEntry, error) {
	r.calls++
	return r.entries, r.err
}

func someEntries(n int) []RawEntry {
	entries := make([]RawEntry, n)
	for i := range entries {
		entries[i] = &StaticEntry{
			ID:      fmt.Sprintf("id-%03d", i),
			Name:    fmt.Sprintf("Business %03d", i),
			Address: "Cotonou, Benin",
		}
	}
	return entries
}

func TestResolveFallbackOrdering(t *testing.T) {
	// ──────────────────────────────────────────────
	// Strict short-circuiting chain: API → CSV → Static
	// ──────────────────────────────────────────────

	t.Run("APIWins", func(t *testing.T) {
		api := &countingReader{source: SourceAPI, entries: someEntries(3)}
		csv := &countingReader{source: SourceCSV, entries: someEntries(5)}
		static := &countingReader{source: SourceStatic, entries: someEntries(1)}

		d, err := New(context.Background(), WithReaders(api, csv, static))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if d.Source() != SourceAPI {
			t.Errorf("source = %s, want %s", d.Source(), SourceAPI)
		}
		if d.Len() != 3 {
			t.Errorf("len = %d, want 3", d.Len())
		}
		if api.calls != 1 || csv.calls != 0 || static.calls != 0 {
			t.Errorf("calls = api:%d csv:%d static:%d, want 1/0/0", api.calls, csv.calls, static.calls)
		}
	})

	t.Run("FallThroughToCSV", func(t *testing.T) {
		api := &countingReader{source: SourceAPI, err: ErrConnectionFailed}
		csv := &countingReader{source: SourceCSV, entries: someEntries(5)}
		static := &countingReader{source: SourceStatic, entries: someEntries(1)}

		d, err := New(context.Background(), WithReaders(api, csv, static))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if d.Source() != SourceCSV {
			t.Errorf("source = %s, want %s", d.Source(), SourceCSV)
		}
		if api.calls != 1 || csv.calls != 1 || static.calls != 0 {
			t.Errorf("calls = api:%d csv:%d static:%d, want 1/1/0", api.calls, csv.calls, static.calls)
		}
	})

	t.Run("FallThroughToStatic", func(t *testing.T) {
		api := &countingReader{source: SourceAPI, err: ErrEmptyResult}
		csv := &countingReader{source: SourceCSV, err: ErrParseFailure}
		static := &countingReader{source: SourceStatic, entries: someEntries(2)}

		d, err := New(context.Background(), WithReaders(api, csv, static))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if d.Source() != SourceStatic {
			t.Errorf("source = %s, want %s", d.Source(), SourceStatic)
		}
	})

	t.Run("AllExhausted", func(t *testing.T) {
		api := &countingReader{source: SourceAPI, err: ErrConnectionFailed}
		csv := &countingReader{source: SourceCSV, err: ErrEmptyResult}
		static := &countingReader{source: SourceStatic, err: ErrEmptyResult}

		_, err := New(context.Background(), WithReaders(api, csv, static))
		if !errors.Is(err, ErrNoUsableSource) {
			t.Fatalf("err = %v, want ErrNoUsableSource", err)
		}
	})

	// A source whose every entry is missing id or name is as useless as an
	// empty one and must not stop the chain.
	t.Run("AllEntriesDroppedFallsThrough", func(t *testing.T) {
		api := &countingReader{source: SourceAPI, entries: []RawEntry{
			&StaticEntry{Name: "No ID"},
			&StaticEntry{ID: "no-name"},
		}}
		static := &countingReader{source: SourceStatic, entries: someEntries(1)}

		d, err := New(context.Background(), WithReaders(api, static))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if d.Source() != SourceStatic {
			t.Errorf("source = %s, want %s", d.Source(), SourceStatic)
		}
	})
}

func TestResolveDropsIncompleteEntries(t *testing.T) {
	entries := []RawEntry{
		&StaticEntry{ID: "ok-1", Name: "Complete", Address: "Cotonou"},
		&StaticEntry{ID: "", Name: "Missing ID"},
		&StaticEntry{ID: "no-name", Name: ""},
		CSVRow{"id": "ok-2", "name": "Also Complete"},
		CSVRow{"id": "", "name": ""},
		&APIEntry{ID: "  ", Name: "Whitespace ID"},
	}
	d, err := New(context.Background(), WithReaders(&fixedReader{entries: entries}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}
	for _, b := range d.Businesses() {
		if b.ID == "" || b.Name == "" {
			t.Errorf("resolved set contains incomplete record %+v", b)
		}
	}
}

func TestResolveDeduplicatesByID(t *testing.T) {
	entries := []RawEntry{
		&StaticEntry{ID: "dup", Name: "First"},
		&StaticEntry{ID: "dup", Name: "Second"},
		&StaticEntry{ID: "other", Name: "Other"},
	}
	d, err := New(context.Background(), WithReaders(&fixedReader{entries: entries}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}
	b, err := d.FindByID("dup")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if b.Name != "First" {
		t.Errorf("duplicate id resolved to %q, want the first occurrence", b.Name)
	}
}

func TestRefresh(t *testing.T) {
	api := &countingReader{source: SourceAPI, err: ErrConnectionFailed}
	static := &countingReader{source: SourceStatic, entries: someEntries(2)}

	d, err := New(context.Background(), WithReaders(api, static))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Source() != SourceStatic {
		t.Fatalf("source = %s, want %s", d.Source(), SourceStatic)
	}

	// The API comes back: a refresh re-runs the chain from the top.
	api.err = nil
	api.entries = someEntries(7)
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if d.Source() != SourceAPI {
		t.Errorf("source after refresh = %s, want %s", d.Source(), SourceAPI)
	}
	if d.Len() != 7 {
		t.Errorf("len after refresh = %d, want 7", d.Len())
	}
	if api.calls != 2 {
		t.Errorf("api calls = %d, want 2", api.calls)
	}

	// A failing refresh keeps the previous set in place.
	api.err = ErrConnectionFailed
	static.err = ErrEmptyResult
	static.entries = nil
	if err := d.Refresh(context.Background()); !errors.Is(err, ErrNoUsableSource) {
		t.Fatalf("Refresh err = %v, want ErrNoUsableSource", err)
	}
	if d.Source() != SourceAPI || d.Len() != 7 {
		t.Errorf("failed refresh disturbed the previous set: %s/%d", d.Source(), d.Len())
	}
}

func TestResolveClock(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d, err := New(context.Background(),
		WithReaders(NewStaticReader()),
		WithClock(func() time.Time { return fixed }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !d.ResolvedAt().Equal(fixed) {
		t.Errorf("resolvedAt = %v, want %v", d.ResolvedAt(), fixed)
	}
}

func TestResolveBulk(t *testing.T) {
	// A large fabricated source: every surviving record obeys the
	// non-empty id/name invariant and ids stay unique.
	gofakeit.Seed(11)

	var entries []RawEntry
	for i := 0; i < 500; i++ {
		row := CSVRow{
			"id":      fmt.Sprintf("bulk-%03d", i%400), // 100 duplicate ids
			"name":    gofakeit.Company(),
			"type":    "boutique",
			"address": fmt.Sprintf("%d Rue %s, Cotonou, Benin", i+1, gofakeit.LastName()),
			"rating":  "4,5", // comma decimal, parsed permissively
		}
		if i%50 == 0 {
			row["name"] = "" // dropped
		}
		entries = append(entries, row)
	}

	d, err := New(context.Background(), WithReaders(&fixedReader{entries: entries}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[string]bool)
	for _, b := range d.Businesses() {
		if b.ID == "" || b.Name == "" {
			t.Fatalf("incomplete record in resolved set: %+v", b)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id in resolved set: %s", b.ID)
		}
		seen[b.ID] = true
		if b.Rating != 4.5 {
			t.Fatalf("rating = %v, want 4.5 from comma-decimal field", b.Rating)
		}
		if b.Category == "" {
			t.Fatalf("record %s has no category", b.ID)
		}
	}
	if d.Len() >= 400 || d.Len() == 0 {
		t.Errorf("len = %d, want 0 < len < 400 after drops and dedupe", d.Len())
	}
}
