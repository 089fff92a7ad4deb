package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tibeb_back_end/internal/contact"
	"tibeb_back_end/internal/user"
)

// ListUsers liste tous les comptes (admin). Les hashes ne sortent jamais.
func ListUsers(users user.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListAll(c.Request.Context())
		if err != nil {
			log.Println("❌ Erreur lecture utilisateurs:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
			return
		}

		out := make([]gin.H, 0, len(list))
		for i := range list {
			out = append(out, userView(&list[i]))
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}

// ListContacts liste les messages de contact (admin), plus récents d'abord.
func ListContacts(contacts contact.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := contacts.ListAll(c.Request.Context())
		if err != nil {
			log.Println("❌ Erreur lecture messages:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": list})
	}
}
