package annuaire

import (
	"regexp"
	"sort"
	"strings"

	"github.com/golang/geo/s2"
)

// FindByLocation filters the canonical set by a location token matched
// against free-text addresses, optionally AND-ed with a category token.
//
// Naive substring matching conflates places whose names share a prefix: the
// token "abomey" must match "12 Rue X, Abomey, Benin" but never
// "5 Rue Y, Abomey Calavi, Benin", which is a different commune. A
// single-word token therefore matches as a whole word only when it is not
// immediately followed by another letter-starting word; punctuation, a
// comma or end of string after the token is fine. Multi-word tokens are
// specific enough already, so each word just has to appear somewhere in the
// address as a whole word, in any order.
//
// An empty result is a normal outcome, never an error. An empty location
// token applies only the category predicate.
func (d *Directory) FindByLocation(location, category string) []Business {
	set := d.snapshot()

	locMatch := locationPredicate(location)
	catToken := strings.ToLower(strings.TrimSpace(category))

	var out []Business
	for _, b := range set.businesses {
		if catToken != "" && !strings.Contains(strings.ToLower(string(b.Category)), catToken) {
			continue
		}
		if locMatch != nil && !locMatch(b.Address) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// locationPredicate compiles the token into an address predicate, or nil
// when the token is empty.
func locationPredicate(token string) func(string) bool {
	// Lower-case, accent-fold, hyphens become spaces. Addresses get the
	// same case/accent folding but keep their punctuation: the
	// followed-by-letter guard below is deliberately the only compound
	// exclusion, matching one known false positive, not a general rule.
	token = strings.ReplaceAll(foldText(token), "-", " ")
	words := strings.Fields(token)
	if len(words) == 0 {
		return nil
	}

	if len(words) == 1 {
		re := singleWordPattern(words[0])
		return func(address string) bool {
			return re.MatchString(foldText(address))
		}
	}

	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = wholeWordPattern(w)
	}
	return func(address string) bool {
		folded := foldText(address)
		for _, re := range res {
			if !re.MatchString(folded) {
				return false
			}
		}
		return true
	}
}

// singleWordPattern matches w as a whole word not immediately followed by a
// letter-starting word. Allowed successors: end of string, punctuation, or
// spaces followed by a non-letter. "abomey" matches "abomey, benin" and
// "rue 4, abomey" but not "abomey calavi".
func singleWordPattern(w string) *regexp.Regexp {
	q := regexp.QuoteMeta(w)
	return regexp.MustCompile(`(?:^|[^\p{L}])` + q + `(?:[^\p{L} ]|[ ]+[^\p{L}]|[ ]*$)`)
}

// wholeWordPattern matches w as a whole word anywhere.
func wholeWordPattern(w string) *regexp.Regexp {
	q := regexp.QuoteMeta(w)
	return regexp.MustCompile(`(?:^|[^\p{L}])` + q + `(?:[^\p{L}]|$)`)
}

// Nearby returns up to limit businesses ordered by distance from the given
// point. Records still sitting on the city-center placeholder carry no real
// position and are skipped. A limit <= 0 means no limit. Ties break by id so
// the ordering is fully deterministic.
func (d *Directory) Nearby(lat, lng float64, limit int) []Business {
	set := d.snapshot()
	from := s2.LatLngFromDegrees(lat, lng)
	if !from.IsValid() {
		return nil
	}

	type candidate struct {
		b    Business
		dist float64
	}
	var candidates []candidate
	for _, b := range set.businesses {
		if !b.HasKnownLocation() {
			continue
		}
		to := s2.LatLngFromDegrees(b.Coordinates.Lat, b.Coordinates.Lng)
		candidates = append(candidates, candidate{b: b, dist: float64(from.Distance(to))})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].b.ID < candidates[j].b.ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]Business, len(candidates))
	for i, c := range candidates {
		out[i] = c.b
	}
	return out
}
