// Command gen-dataset fabricates a CSV snapshot in the exact schema the CSV
// reader consumes. Useful for local development when no real snapshot is
// available.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

var header = []string{
	"id", "name", "type", "query", "address", "phone", "website",
	"rating", "reviews", "latitude", "longitude",
	"enriched_phones", "enriched_websites", "enriched_emails",
	"enrichment_confidence", "enrichment_sources", "facebook", "instagram",
}

var cities = []string{"Cotonou", "Porto Novo", "Abomey", "Abomey Calavi", "Parakou", "Ouidah"}

var types = []string{
	"restaurant", "bar, restaurant", "hotel", "pharmacie", "boutique",
	"banque", "ecole", "ferme", "taxi", "salon de coiffure",
}

func main() {
	out := flag.String("out", "data/businesses.csv", "output path")
	count := flag.Int("count", 200, "number of rows")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("gen-dataset: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		log.Fatalf("gen-dataset: %v", err)
	}

	for i := 0; i < *count; i++ {
		city := cities[gofakeit.Number(0, len(cities)-1)]
		typ := types[gofakeit.Number(0, len(types)-1)]
		row := []string{
			fmt.Sprintf("bj-gen-%04d", i+1),
			gofakeit.Company(),
			typ,
			typ + " " + city,
			fmt.Sprintf("%d Rue %s, %s, Benin", gofakeit.Number(1, 900), gofakeit.LastName(), city),
			"+229 " + gofakeit.Numerify("## ## ## ##"),
			"https://" + gofakeit.DomainName(),
			strconv.FormatFloat(float64(gofakeit.Number(20, 50))/10, 'f', 1, 64),
			strconv.Itoa(gofakeit.Number(0, 2000)),
			strconv.FormatFloat(gofakeit.Float64Range(6.2, 7.3), 'f', 5, 64),
			strconv.FormatFloat(gofakeit.Float64Range(1.9, 2.8), 'f', 5, 64),
			"", "", "", "", "", "", "",
		}
		// Roughly one row in five carries enriched contact data.
		if gofakeit.Number(0, 4) == 0 {
			row[11] = "+229 " + gofakeit.Numerify("## ## ## ##") + ";+229 " + gofakeit.Numerify("## ## ## ##")
			row[13] = gofakeit.Email()
			row[14] = strconv.Itoa(gofakeit.Number(40, 100))
			row[15] = "crawler"
			row[16] = "https://facebook.com/" + gofakeit.Username()
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("gen-dataset: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("gen-dataset: %v", err)
	}
	log.Printf("gen-dataset: wrote %d rows to %s", *count, *out)
}
