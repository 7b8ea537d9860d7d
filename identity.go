package annuaire

import (
	"net/url"
	"strings"
)

// FindByID resolves a possibly URL-encoded, possibly truncated identifier
// token to a canonical record. Routing layers encode ids inconsistently, so
// the lookup runs an ordered strategy chain and the first success wins:
//
//  1. exact match on the raw token
//  2. exact match on the percent-decoded token
//  3. two-directional containment (token within an id, or an id within the
//     token), tolerating truncation on either side
//  4. re-encoding each candidate id and comparing against both token forms
//
// Exact matches must come before containment so a short id never steals a
// lookup by being a substring of an unrelated longer id. ErrNotFound is
// returned only when every strategy fails against every record.
func (d *Directory) FindByID(token string) (Business, error) {
	set := d.snapshot()
	if token == "" || len(set.businesses) == 0 {
		return Business{}, ErrNotFound
	}

	// Strategy 1: raw token, exact.
	if i, ok := set.byID[token]; ok {
		return set.businesses[i], nil
	}

	// Strategy 2: percent-decoded token, exact. An undecodable token (a
	// stray "%" not followed by hex) just skips this strategy.
	decoded, decErr := url.QueryUnescape(token)
	if decErr == nil && decoded != token {
		if i, ok := set.byID[decoded]; ok {
			return set.businesses[i], nil
		}
	}
	if decErr != nil {
		decoded = token
	}

	// Strategy 3: containment, both directions.
	for _, b := range set.businesses {
		if strings.Contains(b.ID, token) || strings.Contains(token, b.ID) {
			return b, nil
		}
		if decoded != token && (strings.Contains(b.ID, decoded) || strings.Contains(decoded, b.ID)) {
			return b, nil
		}
	}

	// Strategy 4: compare re-encoded ids against both token forms. Path
	// and query encodings differ on characters like "+" and "/", and the
	// routing layer may have used either.
	for _, b := range set.businesses {
		for _, enc := range []string{url.QueryEscape(b.ID), url.PathEscape(b.ID)} {
			if enc == token || enc == decoded {
				return b, nil
			}
		}
	}

	return Business{}, ErrNotFound
}
