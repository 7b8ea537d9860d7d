package annuaire

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vocabulary for the ordered classification rules. Keywords are written
// unaccented and lower-case; input text is folded the same way before
// matching, so "Boîte" matches "boite" and "Hôtel" matches "hotel".
//
// The rule order is load-bearing. Entertainment is evaluated before
// Restaurants so a venue tagged both "bar" and "restaurant" lands in
// Entertainment, and the Restaurants rule additionally refuses to fire when
// nightlife vocabulary co-occurs ("restaurant-bar" stays Entertainment even
// if the rules were ever reordered). Do not reorder without re-checking the
// ambiguous-venue cases in classify_test.go.
var (
	entertainmentVocab = []string{
		"bar", "club", "casino", "cinema", "gym", "dance", "danse",
		"lounge", "boite", "discotheque", "karaoke", "buvette",
		"nightlife", "loisir", "spectacle", "musee",
	}
	restaurantVocab = []string{
		"restaurant", "resto", "maquis", "cafe", "cafeteria", "food",
		"cuisine", "pizzeria", "snack", "glacier", "patisserie",
		"boulangerie",
	}
	hotelVocab = []string{
		"hotel", "auberge", "motel", "guesthouse", "hebergement",
	}
	healthVocab = []string{
		"pharmacie", "pharmacy", "clinique", "clinic", "hopital",
		"hospital", "sante", "medical", "dentaire", "laboratoire",
	}
	educationVocab = []string{
		"ecole", "school", "universite", "university", "college",
		"lycee", "formation", "institut",
	}
	financeVocab = []string{
		"banque", "bank", "microfinance", "assurance", "finance",
		"credit", "bureau de change",
	}
	agricultureVocab = []string{
		"ferme", "farm", "agricole", "agriculture", "elevage",
		"plantation", "maraicher",
	}
	transportVocab = []string{
		"transport", "taxi", "zemidjan", "gare routiere", "autocar",
	}
	shoppingVocab = []string{
		"boutique", "magasin", "marche", "market", "supermarche",
		"supermarket", "shop", "store", "vente",
	}
	servicesVocab = []string{
		"service", "salon", "coiffure", "couture", "pressing",
		"reparation", "informatique", "imprimerie", "garage",
		"consulting", "agence",
	}
)

// orderedRules drives Classify for every category past the two special-cased
// leading rules. First match wins.
var orderedRules = []struct {
	category Category
	vocab    []string
}{
	{CategoryHotels, hotelVocab},
	{CategoryHealth, healthVocab},
	{CategoryEducation, educationVocab},
	{CategoryFinance, financeVocab},
	{CategoryAgriculture, agricultureVocab},
	{CategoryTransportation, transportVocab},
	{CategoryShopping, shoppingVocab},
	{CategoryServices, servicesVocab},
}

// accentFolder strips combining marks so accented and unaccented spellings
// compare equal.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText lower-cases and accent-folds s for matching.
func foldText(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// containsAny reports whether text contains any keyword as a substring.
func containsAny(text string, vocab []string) bool {
	for _, kw := range vocab {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Classify assigns one taxonomy label to a business from its noisy signals:
// the business name, free-text type tags, the search query the record came
// from, and the address. Pure and total: identical inputs always produce the
// same label and unknown signals fall through to CategoryOther.
func Classify(name string, typeTags []string, query, address string) Category {
	primary := foldText(strings.Join(typeTags, " ") + " " + query + " " + name)

	// Nightlife first: venues tagged both "bar" and "restaurant" are
	// entertainment, never dining.
	if containsAny(primary, entertainmentVocab) {
		return CategoryEntertainment
	}

	// A co-occurring nightlife token suppresses the dining rule. Rule one
	// already caught those, but the negative constraint keeps the decision
	// local to this rule for ambiguous "restaurant-bar" signals.
	if containsAny(primary, restaurantVocab) && !containsAny(primary, entertainmentVocab) {
		return CategoryRestaurants
	}

	// Remaining categories also consider the address, the weakest signal.
	full := primary + " " + foldText(address)
	for _, rule := range orderedRules {
		if containsAny(full, rule.vocab) {
			return rule.category
		}
	}
	return CategoryOther
}
