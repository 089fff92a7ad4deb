package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"tibeb_back_end/internal/middleware"
	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/user"
	"tibeb_back_end/internal/utils"
)

func userView(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID.String(),
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"role":      u.Role,
	}
}

// Signup crée un compte local et retourne directement un token.
func Signup(users user.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName       string `json:"firstName"`
			LastName        string `json:"lastName"`
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := models.ValidateNewUser(input.FirstName, input.LastName, input.Email, input.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.ConfirmPassword != "" && input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Les mots de passe ne correspondent pas"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		u := &models.User{
			ID:           gocql.TimeUUID(),
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Email:        strings.ToLower(strings.TrimSpace(input.Email)),
			PasswordHash: hash,
			Role:         models.RoleUser,
			CreatedAt:    time.Now().UTC(),
		}

		if err := users.Create(c.Request.Context(), u); err != nil {
			if err == user.ErrEmailTaken {
				c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
				return
			}
			log.Println("❌ Erreur création utilisateur:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}

		token, err := utils.GenerateJWT(*u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"token": token, "user": userView(u)})
	}
}

// Signin authentifie un compte local.
func Signin(users user.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email ou mot de passe manquant"})
			return
		}

		u, err := users.GetByEmail(c.Request.Context(), input.Email)
		if err != nil || !utils.CheckPassword(u.PasswordHash, input.Password) {
			middleware.RecordLoginFailure(c.Request.Context(), rdb, input.Email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}

		middleware.ResetLoginAttempts(c.Request.Context(), rdb, input.Email)

		token, err := utils.GenerateJWT(*u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": userView(u)})
	}
}
