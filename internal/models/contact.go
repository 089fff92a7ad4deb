package models

import (
	"time"

	"github.com/gocql/gocql"
)

type ContactMessage struct {
	ID        gocql.UUID `json:"id" db:"message_id"`
	FullName  string     `json:"fullName" db:"full_name"`
	Email     string     `json:"email" db:"email"`
	Message   string     `json:"message" db:"message"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
