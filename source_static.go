package annuaire

import "context"

// staticBusinesses is the hand-authored dataset of last resort. It is small
// and stale on purpose: it exists so the directory is never empty, not to
// compete with the API or the snapshot.
var staticBusinesses = []StaticEntry{
	{
		ID: "bj-cot-001", Name: "Le Festival des Glaces", Type: "restaurant, glacier",
		Address: "Boulevard Saint Michel, Cotonou, Benin",
		Phone:   "+229 21 32 13 34", Rating: 4.2, Reviews: 186,
		Lat: 6.36423, Lng: 2.42583,
	},
	{
		ID: "bj-cot-002", Name: "Canal Olympia Wologuede", Type: "cinema",
		Address: "Avenue Jean-Paul II, Cotonou, Benin",
		Website: "https://www.canalolympia.com", Rating: 4.5, Reviews: 1204,
		Lat: 6.36881, Lng: 2.41821,
	},
	{
		ID: "bj-cot-003", Name: "Pharmacie Camp Guezo", Type: "pharmacie",
		Address: "Rue 382, Cotonou, Benin",
		Phone:   "+229 21 30 06 77", Rating: 4.0, Reviews: 54,
		Lat: 6.35519, Lng: 2.41902,
	},
	{
		ID: "bj-cot-004", Name: "Erevan Cotonou", Type: "supermarche, shopping",
		Address: "Boulevard de la Marina, Cotonou, Benin",
		Website: "https://www.erevan.bj", Rating: 4.3, Reviews: 2310,
		Lat: 6.35423, Lng: 2.38972,
	},
	{
		ID: "bj-cot-005", Name: "Bank of Africa Ganhi", Type: "banque",
		Address: "Avenue Clozel, Ganhi, Cotonou, Benin",
		Phone:   "+229 21 31 32 28", Rating: 3.8, Reviews: 97,
		Lat: 6.35201, Lng: 2.42751,
	},
	{
		ID: "bj-cal-001", Name: "Maquis Chez Maman Bénédicte", Type: "maquis, restaurant",
		Address: "Carrefour IITA, Abomey Calavi, Benin",
		Phone:   "+229 97 44 12 08", Rating: 4.4, Reviews: 132,
		Lat: 6.44852, Lng: 2.35566,
	},
	{
		ID: "bj-cal-002", Name: "Universite d'Abomey-Calavi", Type: "universite",
		Address: "Campus d'Abomey Calavi, Abomey Calavi, Benin",
		Website: "https://www.uac.bj", Rating: 4.1, Reviews: 845,
		Lat: 6.41667, Lng: 2.34167,
	},
	{
		ID: "bj-abo-001", Name: "Musee Historique d'Abomey", Type: "musee, loisir",
		Address: "Quartier Agbondjedo, Abomey, Benin",
		Phone:   "+229 22 50 03 14", Rating: 4.6, Reviews: 672,
		Lat: 7.18286, Lng: 1.99119,
	},
	{
		ID: "bj-abo-002", Name: "Auberge de la Cite Royale", Type: "hotel, auberge",
		Address: "Rue du Palais, Abomey, Benin",
		Phone:   "+229 95 28 40 16", Rating: 3.9, Reviews: 88,
		Lat: 7.18532, Lng: 1.98874,
	},
	{
		ID: "bj-pn-001", Name: "Marche Ouando", Type: "marche",
		Address: "Quartier Ouando, Porto Novo, Benin",
		Rating:  4.0, Reviews: 410,
		Lat: 6.50251, Lng: 2.62921,
	},
	{
		ID: "bj-pn-002", Name: "Clinique Louis Pasteur", Type: "clinique",
		Address: "Avenue Victor Ballot, Porto Novo, Benin",
		Phone:   "+229 20 21 33 85", Rating: 4.2, Reviews: 63,
		Lat: 6.49711, Lng: 2.60524,
	},
	{
		ID: "bj-par-001", Name: "Ferme Songhai", Type: "ferme, agriculture",
		Address: "Route de Ouando, Porto Novo, Benin",
		Website: "https://www.songhai.org", Rating: 4.7, Reviews: 529,
		Lat: 6.50897, Lng: 2.63312,
	},
}

// StaticReader returns the fixed in-memory fallback list. It cannot fail in
// practice; the error return exists for interface symmetry with the other
// readers.
type StaticReader struct{}

// NewStaticReader creates the fallback reader.
func NewStaticReader() *StaticReader { return &StaticReader{} }

// Source implements Reader.
func (r *StaticReader) Source() SourceID { return SourceStatic }

// Read implements Reader.
func (r *StaticReader) Read(ctx context.Context) ([]RawEntry, error) {
	if len(staticBusinesses) == 0 {
		return nil, ErrEmptyResult
	}
	entries := make([]RawEntry, len(staticBusinesses))
	for i := range staticBusinesses {
		entries[i] = &staticBusinesses[i]
	}
	return entries, nil
}
