package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tibeb_back_end/internal/user"
)

func currentUserID(c *gin.Context) (gocql.UUID, bool) {
	raw := c.GetString("user_id")
	id, err := gocql.ParseUUID(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return gocql.UUID{}, false
	}
	return id, true
}

// Me retourne le profil du compte connecté. Le hash ne sort jamais.
func Me(users user.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}

		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusOK, userView(u))
	}
}

// UpdateMe met à jour les champs de profil modifiables.
func UpdateMe(users user.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}

		var input struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}

		if v := strings.TrimSpace(input.FirstName); v != "" {
			u.FirstName = v
		}
		if v := strings.TrimSpace(input.LastName); v != "" {
			u.LastName = v
		}

		if err := users.Update(c.Request.Context(), u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
			return
		}
		c.JSON(http.StatusOK, userView(u))
	}
}
