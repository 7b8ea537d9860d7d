package annuaire

import (
	"context"
	"errors"
)

// Reader-level errors. All three are absorbed by the resolution chain; none
// of them ever surfaces to callers of the query functions.
var (
	// ErrConnectionFailed means the remote API could not be reached or did
	// not answer within the configured timeout.
	ErrConnectionFailed = errors.New("annuaire: connection failed")

	// ErrParseFailure means a source produced bytes that could not be
	// decoded into entries.
	ErrParseFailure = errors.New("annuaire: parse failure")

	// ErrEmptyResult means a source answered correctly but held no entries.
	ErrEmptyResult = errors.New("annuaire: empty result")

	// ErrNotFound is the normal negative result of an identity lookup.
	ErrNotFound = errors.New("annuaire: business not found")

	// ErrNoUsableSource means every reader in the fallback chain came back
	// empty or failed. The static fallback makes this unreachable in a
	// correctly built binary, so it signals a fatal misconfiguration.
	ErrNoUsableSource = errors.New("annuaire: no usable data source")
)

// A Reader produces raw, source-shaped business entries. Readers are tried
// strictly in priority order; a reader is only consulted after every reader
// before it failed or came back empty.
type Reader interface {
	// Source identifies the reader for provenance reporting.
	Source() SourceID
	// Read returns the full unordered entry list, or one of the
	// reader-level errors above.
	Read(ctx context.Context) ([]RawEntry, error)
}

// RawEntry is one source-shaped business entry before normalization. It is a
// closed union: exactly *APIEntry, CSVRow and *StaticEntry implement it, and
// the normalizer type-switches over those three variants. Raw entries are
// never retained after normalization.
type RawEntry interface {
	rawEntry()
}

// APIEntry is the remote API's JSON object shape.
type APIEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	Query   string   `json:"query"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Website string   `json:"website"`
	Rating  float64  `json:"rating"`
	Reviews int      `json:"reviews"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`

	EnrichedPhones       []string          `json:"enriched_phones"`
	EnrichedWebsites     []string          `json:"enriched_websites"`
	EnrichedEmails       []string          `json:"enriched_emails"`
	EnrichmentConfidence int               `json:"enrichment_confidence"`
	EnrichmentSources    []string          `json:"enrichment_sources"`
	SocialLinks          map[string]string `json:"social_links"`
}

func (*APIEntry) rawEntry() {}

// CSVRow is one header-keyed row of the bundled snapshot. Every value is a
// string exactly as it appeared in the file.
type CSVRow map[string]string

func (CSVRow) rawEntry() {}

// StaticEntry is a hand-authored fallback record.
type StaticEntry struct {
	ID      string
	Name    string
	Type    string
	Address string
	Phone   string
	Website string
	Rating  float64
	Reviews int
	Lat     float64
	Lng     float64
}

func (*StaticEntry) rawEntry() {}
