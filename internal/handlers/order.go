package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"tibeb_back_end/internal/cache"
	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/order"
	"tibeb_back_end/internal/user"
	"tibeb_back_end/internal/utils"
)

// CreateOrder transforme le panier du client en commande persistée.
// POST /api/orders {items:[{product,quantity}]}
func CreateOrder(resolver *order.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input struct {
			Items []order.CartLine `json:"items"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		o, err := resolver.PlaceOrder(c.Request.Context(), userID, input.Items)
		if err != nil {
			switch err.(type) {
			case *order.InvalidItemError:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				if err == order.ErrEmptyCart {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
					return
				}
				log.Println("❌ Erreur création commande:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
			}
			return
		}

		// Confirmation par e-mail après le commit, jamais bloquante
		if email := c.GetString("email"); email != "" {
			go utils.NotifyOrderPlaced(*o, email)
		}

		c.JSON(http.StatusCreated, o)
	}
}

// MyOrders liste les commandes du compte connecté, produits enrichis.
func MyOrders(orders order.Store, rdb *redis.Client, session *gocql.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		list, err := orders.ListByUser(c.Request.Context(), userID)
		if err != nil {
			log.Println("❌ Erreur lecture commandes:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
			return
		}

		expandProducts(c, list, rdb, session)
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

// AllOrders liste toutes les commandes (admin), clients et produits enrichis.
func AllOrders(orders order.Store, users user.Store, rdb *redis.Client, session *gocql.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context())
		if err != nil {
			log.Println("❌ Erreur lecture commandes:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
			return
		}

		expandProducts(c, list, rdb, session)

		// Enrichir avec l'email du client
		emails := make(map[gocql.UUID]string)
		for i := range list {
			email, seen := emails[list[i].UserID]
			if !seen {
				if u, err := users.GetByID(c.Request.Context(), list[i].UserID); err == nil {
					email = u.Email
				}
				emails[list[i].UserID] = email
			}
			list[i].UserEmail = email
		}

		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

// UpdateOrderStatus fait avancer une commande dans son cycle de vie (admin).
// PUT /api/orders/:id/status {status}
func UpdateOrderStatus(orders order.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
			return
		}

		if err := orders.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
			if err == order.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
				return
			}
			log.Println("❌ Erreur mise à jour statut:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "status": input.Status})
	}
}

// expandProducts rafraîchit nom et image des lignes depuis le catalogue
// quand le produit existe encore; sinon le snapshot persiste.
func expandProducts(c *gin.Context, list []models.Order, rdb *redis.Client, session *gocql.Session) {
	if session == nil {
		return
	}

	var ids []gocql.UUID
	for i := range list {
		for j := range list[i].Lines {
			ids = append(ids, list[i].Lines[j].ProductID)
		}
	}
	if len(ids) == 0 {
		return
	}

	displays := cache.GetProductDisplays(c.Request.Context(), rdb, session, ids)
	for i := range list {
		for j := range list[i].Lines {
			if d, ok := displays[list[i].Lines[j].ProductID]; ok {
				list[i].Lines[j].ProductName = d.Name
				list[i].Lines[j].ProductImage = d.Image
			}
		}
	}
}
