package catalog

import (
	"sort"
	"strings"

	"tibeb_back_end/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Filter décrit les critères de recherche du catalogue.
// Tous les champs sont optionnels; un champ absent ne filtre rien.
type Filter struct {
	Query    string   // sous-chaîne insensible à la casse sur nom/description
	Category string   // correspondance exacte
	MinPrice *float64 // borne incluse
	MaxPrice *float64 // borne incluse
}

// NormalizePage ramène la page demandée à 1 minimum.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeLimit applique le défaut (20) et borne à [1,100].
func NormalizeLimit(limit int) int {
	if limit == 0 {
		return DefaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// PageCount = ceil(total / limit).
func PageCount(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Matches indique si un produit satisfait le filtre.
// Un produit désactivé n'est jamais retourné par le catalogue.
func (f Filter) Matches(p models.Product) bool {
	if !p.IsActive {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Apply filtre puis trie du plus récent au plus ancien.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Paginate découpe une tranche déjà triée. page et limit doivent être
// normalisés au préalable.
func Paginate(items []models.Product, page, limit int) []models.Product {
	start := (page - 1) * limit
	if start >= len(items) {
		return []models.Product{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
