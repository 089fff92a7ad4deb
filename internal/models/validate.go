package models

import (
	"fmt"
	"strings"
)

// ValidationError identifie le champ fautif pour que les handlers
// renvoient un message précis au client (HTTP 400).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("champ '%s' invalide: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate vérifie un produit avant persistance.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "obligatoire")
	}
	if p.Price < 0 {
		return invalid("price", "doit être positif ou nul")
	}
	if p.InventoryCount < 0 {
		return invalid("inventoryCount", "doit être positif ou nul")
	}
	return nil
}

// Validate vérifie un message de contact avant persistance.
func (m *ContactMessage) Validate() error {
	if strings.TrimSpace(m.FullName) == "" {
		return invalid("fullName", "obligatoire")
	}
	if strings.TrimSpace(m.Email) == "" || !strings.Contains(m.Email, "@") {
		return invalid("email", "adresse invalide")
	}
	if strings.TrimSpace(m.Message) == "" {
		return invalid("message", "obligatoire")
	}
	return nil
}

// ValidateNewUser vérifie les champs d'inscription avant création du compte.
func ValidateNewUser(firstName, lastName, email, password string) error {
	if strings.TrimSpace(firstName) == "" {
		return invalid("firstName", "obligatoire")
	}
	if strings.TrimSpace(lastName) == "" {
		return invalid("lastName", "obligatoire")
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return invalid("email", "adresse invalide")
	}
	if password == "" {
		return invalid("password", "obligatoire")
	}
	return nil
}

// ValidStatus indique si un statut de commande fait partie de l'énumération.
func ValidStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
