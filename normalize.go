package annuaire

import (
	"strconv"
	"strings"
)

// signals extracts the classification signals from a raw entry: business
// name, free-text type tags, originating search query and address.
func signals(e RawEntry) (name string, typeTags []string, query, address string) {
	switch v := e.(type) {
	case *APIEntry:
		return v.Name, v.Types, v.Query, v.Address
	case CSVRow:
		return v["name"], splitList(v["type"]), v["query"], v["address"]
	case *StaticEntry:
		return v.Name, splitList(v.Type), "", v.Address
	}
	return "", nil, "", ""
}

// Normalize converts a raw source-shaped entry into the canonical record.
// It never fails: the second return is false only for entries missing the
// required id or name, which the orchestrator drops instead of padding with
// placeholders. Every optional field gets its documented default.
func Normalize(e RawEntry, category Category) (Business, bool) {
	var b Business
	switch v := e.(type) {
	case *APIEntry:
		b = Business{
			ID:                   strings.TrimSpace(v.ID),
			Name:                 strings.TrimSpace(v.Name),
			Rating:               v.Rating,
			ReviewCount:          v.Reviews,
			Address:              strings.TrimSpace(v.Address),
			Coordinates:          coordsOrDefault(v.Lat, v.Lng),
			Phone:                strings.TrimSpace(v.Phone),
			Website:              strings.TrimSpace(v.Website),
			EnrichedPhones:       cleanList(v.EnrichedPhones),
			EnrichedWebsites:     cleanList(v.EnrichedWebsites),
			EnrichedEmails:       cleanList(v.EnrichedEmails),
			EnrichmentConfidence: clampConfidence(v.EnrichmentConfidence),
			EnrichmentSources:    cleanList(v.EnrichmentSources),
			SocialLinks:          cleanLinks(v.SocialLinks),
		}
	case CSVRow:
		b = Business{
			ID:                   v["id"],
			Name:                 v["name"],
			Rating:               parseFloatField(v["rating"]),
			ReviewCount:          parseIntField(v["reviews"]),
			Address:              v["address"],
			Coordinates:          parseCoords(v["latitude"], v["longitude"]),
			Phone:                v["phone"],
			Website:              v["website"],
			EnrichedPhones:       splitList(v["enriched_phones"]),
			EnrichedWebsites:     splitList(v["enriched_websites"]),
			EnrichedEmails:       splitList(v["enriched_emails"]),
			EnrichmentConfidence: clampConfidence(parseIntField(v["enrichment_confidence"])),
			EnrichmentSources:    splitList(v["enrichment_sources"]),
			SocialLinks:          socialColumns(v),
		}
	case *StaticEntry:
		b = Business{
			ID:          v.ID,
			Name:        v.Name,
			Rating:      v.Rating,
			ReviewCount: v.Reviews,
			Address:     v.Address,
			Coordinates: staticCoords(v.Lat, v.Lng),
			Phone:       v.Phone,
			Website:     v.Website,
		}
	default:
		return Business{}, false
	}

	if b.ID == "" || b.Name == "" {
		return Business{}, false
	}

	b.Category = category
	if b.Category == "" {
		b.Category = CategoryOther
	}

	b.HasEnrichedData = len(b.EnrichedPhones) > 0 || len(b.EnrichedWebsites) > 0 || len(b.EnrichedEmails) > 0
	if !b.HasEnrichedData {
		// Enrichment metadata is only meaningful alongside enriched data.
		b.EnrichmentConfidence = 0
		b.EnrichmentSources = nil
	}
	return b, true
}

// splitList splits a semicolon- or comma-separated field into trimmed,
// non-empty values.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	sep := ";"
	if !strings.Contains(s, ";") {
		sep = ","
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanList drops empty values from an already-split list.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanLinks drops platforms with empty URLs; absent platforms stay absent,
// never null-valued.
func cleanLinks(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for platform, link := range in {
		platform = strings.ToLower(strings.TrimSpace(platform))
		link = strings.TrimSpace(link)
		if platform != "" && link != "" {
			out[platform] = link
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// socialPlatforms are the social columns recognized in the CSV snapshot.
var socialPlatforms = []string{"facebook", "instagram", "whatsapp", "tiktok", "linkedin"}

func socialColumns(row CSVRow) map[string]string {
	var out map[string]string
	for _, platform := range socialPlatforms {
		if link := strings.TrimSpace(row[platform]); link != "" {
			if out == nil {
				out = make(map[string]string)
			}
			out[platform] = link
		}
	}
	return out
}

// parseFloatField parses a numeric string permissively: surrounding space
// and a comma decimal separator are tolerated, anything unparseable is 0.
func parseFloatField(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntField(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Review counts sometimes arrive as "132.0" from spreadsheet exports.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func clampConfidence(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// parseCoords parses string coordinates, falling back to the city-center
// placeholder when either value is missing or unparseable. A single bad
// field poisons the pair: half-real coordinates must never enter the set.
func parseCoords(lat, lng string) Coordinates {
	latF, latOK := parseCoordField(lat)
	lngF, lngOK := parseCoordField(lng)
	if !latOK || !lngOK || (latF == 0 && lngF == 0) {
		return CityCenter
	}
	return Coordinates{Lat: latF, Lng: lngF}
}

func parseCoordField(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// coordsOrDefault applies the same placeholder policy to the API shape,
// where absent coordinates arrive as JSON nulls.
func coordsOrDefault(lat, lng *float64) Coordinates {
	if lat == nil || lng == nil {
		return CityCenter
	}
	return Coordinates{Lat: *lat, Lng: *lng}
}

func staticCoords(lat, lng float64) Coordinates {
	if lat == 0 && lng == 0 {
		return CityCenter
	}
	return Coordinates{Lat: lat, Lng: lng}
}
