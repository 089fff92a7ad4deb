package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tibeb_back_end/internal/contact"
	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/utils"
)

// CreateContact enregistre un message de contact et prévient l'équipe.
// POST /api/contact {fullName,email,message}
func CreateContact(contacts contact.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName string `json:"fullName"`
			Email    string `json:"email"`
			Message  string `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m := models.ContactMessage{
			ID:        gocql.TimeUUID(),
			FullName:  strings.TrimSpace(input.FullName),
			Email:     strings.ToLower(strings.TrimSpace(input.Email)),
			Message:   strings.TrimSpace(input.Message),
			CreatedAt: time.Now().UTC(),
		}
		if err := m.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := contacts.Create(c.Request.Context(), &m); err != nil {
			log.Println("❌ Erreur enregistrement contact:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement message"})
			return
		}

		// Notification après le commit, jamais bloquante
		go utils.NotifyContactMessage(m)

		c.JSON(http.StatusCreated, gin.H{"id": m.ID.String()})
	}
}
