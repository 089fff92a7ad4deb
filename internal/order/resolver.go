package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"tibeb_back_end/internal/models"
)

var ErrEmptyCart = errors.New("panier vide")

// InvalidItemError fait échouer toute la commande : aucune commande
// partielle n'est jamais créée.
type InvalidItemError struct {
	ProductID gocql.UUID
	Reason    string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("article %s invalide: %s", e.ProductID, e.Reason)
}

// CartLine est une ligne de panier telle qu'envoyée par le client.
// Le prix n'en fait jamais partie : seul le catalogue fait foi.
type CartLine struct {
	ProductID gocql.UUID `json:"product"`
	Quantity  int        `json:"quantity"`
}

// CatalogReader est la vue du catalogue dont le resolver a besoin.
type CatalogReader interface {
	GetActiveByIDs(ctx context.Context, ids []gocql.UUID) (map[gocql.UUID]models.Product, error)
}

// Resolver transforme un panier en commande : résolution des prix
// courants, validation de chaque ligne, calcul du total, persistance.
type Resolver struct {
	Catalog CatalogReader
	Orders  Store
}

func NewResolver(catalog CatalogReader, orders Store) *Resolver {
	return &Resolver{Catalog: catalog, Orders: orders}
}

// PlaceOrder crée une commande à partir du panier, en tout-ou-rien.
//
// Chaque ligne est prix-ée depuis le catalogue au moment de l'appel;
// les changements de prix ultérieurs ne modifient jamais une commande
// existante. Fenêtre de course lecture-puis-écriture assumée : un prix
// modifié entre la résolution et la persistance peut être figé dans la
// commande (pas d'isolation transactionnelle).
func (r *Resolver) PlaceOrder(ctx context.Context, userID gocql.UUID, cart []CartLine) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]gocql.UUID, 0, len(cart))
	for _, line := range cart {
		ids = append(ids, line.ProductID)
	}

	active, err := r.Catalog.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]models.OrderLine, 0, len(cart))

	for _, line := range cart {
		p, ok := active[line.ProductID]
		if !ok {
			return nil, &InvalidItemError{ProductID: line.ProductID, Reason: "produit indisponible"}
		}
		if line.Quantity < 1 {
			return nil, &InvalidItemError{ProductID: line.ProductID, Reason: "quantité invalide"}
		}

		lineTotal := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		ol := models.OrderLine{
			ProductID:       p.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: p.Price,
			ProductName:     p.Name,
		}
		if len(p.Images) > 0 {
			ol.ProductImage = p.Images[0]
		}
		lines = append(lines, ol)
	}

	totalAmount, _ := total.Float64()

	o := &models.Order{
		ID:          gocql.TimeUUID(),
		UserID:      userID,
		Lines:       lines,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
