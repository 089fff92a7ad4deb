package catalog

import (
	"testing"
	"time"

	"github.com/gocql/gocql"

	"tibeb_back_end/internal/models"
)

func produit(name, desc, category string, price float64, active bool, age time.Duration) models.Product {
	return models.Product{
		ID:          gocql.TimeUUID(),
		Name:        name,
		Description: desc,
		Category:    category,
		Price:       price,
		IsActive:    active,
		CreatedAt:   time.Now().Add(-age),
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 1}, {0, 1}, {1, 1}, {7, 7},
	}
	for _, tc := range cases {
		if got := NormalizePage(tc.in); got != tc.want {
			t.Errorf("NormalizePage(%d)=%d, attendu %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 20}, {-1, 1}, {1, 1}, {50, 50}, {100, 100}, {101, 100}, {5000, 100},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Errorf("NormalizeLimit(%d)=%d, attendu %d", tc.in, got, tc.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{0, 20, 0}, {1, 20, 1}, {20, 20, 1}, {21, 20, 2}, {100, 20, 5}, {101, 20, 6},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.limit); got != tc.want {
			t.Errorf("PageCount(%d,%d)=%d, attendu %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestMatches_InactiveNeverReturned(t *testing.T) {
	p := produit("Habesha Kemis", "robe traditionnelle", "women", 100, false, 0)
	if (Filter{}).Matches(p) {
		t.Fatal("un produit désactivé ne doit jamais matcher")
	}
}

func TestMatches_QueryCaseInsensitive(t *testing.T) {
	p := produit("Habesha Kemis", "Robe brodée à la main", "women", 100, true, 0)

	for _, q := range []string{"habesha", "KEMIS", "BRODÉE", "robe"} {
		if !(Filter{Query: q}).Matches(p) {
			t.Errorf("Query=%q devrait matcher nom ou description", q)
		}
	}
	if (Filter{Query: "netela"}).Matches(p) {
		t.Error("Query sans correspondance ne doit pas matcher")
	}
}

func TestMatches_CategoryExact(t *testing.T) {
	p := produit("Netela", "écharpe", "women", 50, true, 0)
	if !(Filter{Category: "women"}).Matches(p) {
		t.Error("catégorie exacte devrait matcher")
	}
	if (Filter{Category: "wom"}).Matches(p) {
		t.Error("la catégorie est une correspondance exacte, pas un préfixe")
	}
}

func TestMatches_PriceRange(t *testing.T) {
	p := produit("Gabi", "couverture tissée", "home", 250, true, 0)

	min, max := 200.0, 300.0
	if !(Filter{MinPrice: &min, MaxPrice: &max}).Matches(p) {
		t.Error("250 est dans [200,300]")
	}

	tooHigh := 260.0
	if (Filter{MinPrice: &tooHigh}).Matches(p) {
		t.Error("250 < min 260, ne doit pas matcher")
	}

	tooLow := 240.0
	if (Filter{MaxPrice: &tooLow}).Matches(p) {
		t.Error("250 > max 240, ne doit pas matcher")
	}

	// Bornes incluses
	exact := 250.0
	if !(Filter{MinPrice: &exact, MaxPrice: &exact}).Matches(p) {
		t.Error("les bornes sont incluses")
	}
}

func TestApply_NewestFirstAndActiveOnly(t *testing.T) {
	old := produit("Ancien", "", "misc", 10, true, 48*time.Hour)
	recent := produit("Récent", "", "misc", 10, true, 1*time.Hour)
	inactive := produit("Caché", "", "misc", 10, false, 0)

	out := (Filter{}).Apply([]models.Product{old, inactive, recent})
	if len(out) != 2 {
		t.Fatalf("attendu 2 produits actifs, obtenu %d", len(out))
	}
	if out[0].Name != "Récent" || out[1].Name != "Ancien" {
		t.Fatalf("ordre attendu [Récent Ancien], obtenu [%s %s]", out[0].Name, out[1].Name)
	}
}

func TestPaginate(t *testing.T) {
	var items []models.Product
	for i := 0; i < 45; i++ {
		items = append(items, produit("P", "", "misc", 1, true, time.Duration(i)*time.Minute))
	}

	if got := len(Paginate(items, 1, 20)); got != 20 {
		t.Errorf("page 1: attendu 20, obtenu %d", got)
	}
	if got := len(Paginate(items, 3, 20)); got != 5 {
		t.Errorf("page 3: attendu 5, obtenu %d", got)
	}
	if got := len(Paginate(items, 4, 20)); got != 0 {
		t.Errorf("page 4 hors bornes: attendu 0, obtenu %d", got)
	}
}
