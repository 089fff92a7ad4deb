package catalog

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"tibeb_back_end/internal/models"
)

var ErrNotFound = errors.New("produit introuvable")

// Page est le résultat d'une requête catalogue paginée.
type Page struct {
	Items []models.Product `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// Store est le contrat du catalogue. L'implémentation ScyllaDB vit dans
// scylla.go; les tests utilisent des doublures en mémoire.
type Store interface {
	// Query retourne les produits actifs correspondant au filtre,
	// triés du plus récent au plus ancien.
	Query(ctx context.Context, f Filter, page, limit int) (Page, error)

	// GetActive retourne ErrNotFound pour un produit absent ou désactivé.
	GetActive(ctx context.Context, id gocql.UUID) (*models.Product, error)

	// Get lit un produit sans filtrer sur is_active. Réservé aux
	// écrans d'administration, qui doivent pouvoir réactiver un
	// produit désactivé.
	Get(ctx context.Context, id gocql.UUID) (*models.Product, error)

	// GetActiveByIDs récupère en lot les produits actifs référencés.
	// Les ids absents ou désactivés sont simplement omis du résultat.
	GetActiveByIDs(ctx context.Context, ids []gocql.UUID) (map[gocql.UUID]models.Product, error)

	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	SoftDelete(ctx context.Context, id gocql.UUID) error
	AppendImages(ctx context.Context, id gocql.UUID, urls []string) (*models.Product, error)
}
