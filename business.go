// Package annuaire resolves business records for a localized directory from
// unreliable sources (remote API, bundled CSV snapshot, static fallback) into
// one immutable canonical set and answers identity and geographic queries
// against it.
package annuaire

// SourceID identifies the origin of a resolved business set.
type SourceID string

const (
	SourceAPI    SourceID = "api"
	SourceCSV    SourceID = "csv"
	SourceStatic SourceID = "static"
)

// Category is one label from the fixed business taxonomy.
type Category string

const (
	CategoryEntertainment  Category = "Entertainment"
	CategoryRestaurants    Category = "Restaurants"
	CategoryHotels         Category = "Hotels"
	CategoryServices       Category = "Services"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryEducation      Category = "Education"
	CategoryAgriculture    Category = "Agriculture"
	CategoryFinance        Category = "Finance"
	CategoryTransportation Category = "Transportation"
	CategoryOther          Category = "Other"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CityCenter is the placeholder coordinate assigned when a source carries no
// usable position (central Cotonou). It marks "location unknown", it is not a
// guess at the true location.
var CityCenter = Coordinates{Lat: 6.36536, Lng: 2.41833}

// Business is the canonical, normalized unit of record. A Business is created
// once during resolution and never mutated afterwards.
type Business struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"reviewCount"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`

	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`

	// Enriched contact data: higher-confidence, possibly multi-valued
	// variants of the legacy single-value fields. When a list is non-empty
	// its first element is the primary value for display.
	EnrichedPhones   []string `json:"enrichedPhones,omitempty"`
	EnrichedWebsites []string `json:"enrichedWebsites,omitempty"`
	EnrichedEmails   []string `json:"enrichedEmails,omitempty"`

	// HasEnrichedData is true iff at least one enriched list is non-empty.
	// Derived once at normalization time, never recomputed by consumers.
	HasEnrichedData      bool     `json:"hasEnrichedData"`
	EnrichmentConfidence int      `json:"enrichmentConfidence,omitempty"`
	EnrichmentSources    []string `json:"enrichmentSources,omitempty"`

	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

// PrimaryPhone returns the enriched primary phone when present, falling back
// to the legacy single-value field.
func (b Business) PrimaryPhone() string {
	if len(b.EnrichedPhones) > 0 {
		return b.EnrichedPhones[0]
	}
	return b.Phone
}

// PrimaryWebsite returns the enriched primary website when present, falling
// back to the legacy single-value field.
func (b Business) PrimaryWebsite() string {
	if len(b.EnrichedWebsites) > 0 {
		return b.EnrichedWebsites[0]
	}
	return b.Website
}

// HasKnownLocation reports whether the record carries real coordinates rather
// than the city-center placeholder.
func (b Business) HasKnownLocation() bool {
	return b.Coordinates != CityCenter && (b.Coordinates.Lat != 0 || b.Coordinates.Lng != 0)
}
