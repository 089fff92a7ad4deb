package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID             gocql.UUID `json:"id" db:"product_id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	Price          float64    `json:"price" db:"price"`
	Category       string     `json:"category" db:"category"`
	Images         []string   `json:"images" db:"images"`
	InventoryCount int        `json:"inventoryCount" db:"inventory_count"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}
