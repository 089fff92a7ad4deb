package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts possibles d'une commande
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type OrderLine struct {
	ProductID       gocql.UUID `json:"product" db:"product_id"`
	Quantity        int        `json:"quantity" db:"quantity"`
	PriceAtPurchase float64    `json:"priceAtPurchase" db:"price_at_purchase"`

	// Snapshot d'affichage figé à la commande, rafraîchi depuis le
	// catalogue à la lecture quand le produit existe encore
	ProductName  string `json:"productName,omitempty"`
	ProductImage string `json:"productImage,omitempty"`
}

type Order struct {
	ID          gocql.UUID  `json:"id" db:"order_id"`
	UserID      gocql.UUID  `json:"user" db:"user_id"`
	Lines       []OrderLine `json:"lines" db:"lines"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	Status      string      `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`

	// Enrichi pour la vue admin
	UserEmail string `json:"userEmail,omitempty"`
}
