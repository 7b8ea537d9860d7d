package annuaire

import (
	"context"
	"errors"
	"net/url"
	"testing"
)

// staticDirectory builds a Directory backed by the static fallback only.
func staticDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := New(context.Background(), WithReaders(NewStaticReader()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

// fixedReader feeds a Directory an arbitrary entry list in tests.
type fixedReader struct {
	entries []RawEntry
}

func (r *fixedReader) Source() SourceID { return SourceStatic }
func (r *fixedReader) Read(ctx context.Context) ([]RawEntry, error) {
	return r.entries, nil
}

func directoryWithIDs(t *testing.T, ids ...string) *Directory {
	t.Helper()
	var entries []RawEntry
	for _, id := range ids {
		entries = append(entries, &StaticEntry{ID: id, Name: "Biz " + id, Address: "Cotonou, Benin"})
	}
	d, err := New(context.Background(), WithReaders(&fixedReader{entries: entries}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestFindByID(t *testing.T) {
	d := staticDirectory(t)

	// ──────────────────────────────────────────────
	// Strategy 1: raw token, exact
	// ──────────────────────────────────────────────

	t.Run("ExactMatch", func(t *testing.T) {
		b, err := d.FindByID("bj-abo-001")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if b.Name != "Musee Historique d'Abomey" {
			t.Errorf("name = %q, want the Abomey museum", b.Name)
		}
	})

	// ──────────────────────────────────────────────
	// Strategy 3: truncated token, containment
	// ──────────────────────────────────────────────

	t.Run("TruncatedToken", func(t *testing.T) {
		b, err := d.FindByID("bj-pn-00")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		// Both Porto Novo records contain the fragment; set order makes
		// the first one win deterministically.
		if b.ID != "bj-pn-001" {
			t.Errorf("id = %q, want bj-pn-001", b.ID)
		}
	})

	t.Run("TokenLongerThanID", func(t *testing.T) {
		b, err := d.FindByID("bj-cot-004-trailing-junk")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if b.ID != "bj-cot-004" {
			t.Errorf("id = %q, want bj-cot-004", b.ID)
		}
	})

	// ──────────────────────────────────────────────
	// Absence: no substring relationship at all
	// ──────────────────────────────────────────────

	t.Run("NotFound", func(t *testing.T) {
		_, err := d.FindByID("totally-unrelated-token")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := d.FindByID("")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestFindByIDEncoded(t *testing.T) {
	// ──────────────────────────────────────────────
	// Strategy 2: percent-decoded token
	// ──────────────────────────────────────────────

	t.Run("EncodedToken", func(t *testing.T) {
		d := directoryWithIDs(t, "ChIJ+abc/123", "plain-id")
		b, err := d.FindByID(url.QueryEscape("ChIJ+abc/123"))
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if b.ID != "ChIJ+abc/123" {
			t.Errorf("id = %q, want ChIJ+abc/123", b.ID)
		}
	})

	// ──────────────────────────────────────────────
	// Strategy 4: double-encoded token meets the
	// re-encoded id halfway
	// ──────────────────────────────────────────────

	t.Run("DoubleEncodedToken", func(t *testing.T) {
		d := directoryWithIDs(t, "bj/route-7", "plain-id")
		token := url.QueryEscape(url.QueryEscape("bj/route-7"))
		b, err := d.FindByID(token)
		if err != nil {
			t.Fatalf("FindByID(%q): %v", token, err)
		}
		if b.ID != "bj/route-7" {
			t.Errorf("id = %q, want bj/route-7", b.ID)
		}
	})

	// An invalid escape sequence must not panic or mask later strategies.
	t.Run("UndecodableToken", func(t *testing.T) {
		d := directoryWithIDs(t, "promo-100%zzoff")
		b, err := d.FindByID("100%zz")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if b.ID != "promo-100%zzoff" {
			t.Errorf("id = %q, want promo-100%%zzoff", b.ID)
		}
	})
}

func TestFindByIDPrefersExactOverContainment(t *testing.T) {
	// A short id must not be stolen via containment when an exact match
	// exists: "bj-1" is a substring of "xbj-12" but the exact record wins.
	d := directoryWithIDs(t, "xbj-12", "bj-1")
	b, err := d.FindByID("bj-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if b.ID != "bj-1" {
		t.Errorf("id = %q, want exact match bj-1", b.ID)
	}
}
