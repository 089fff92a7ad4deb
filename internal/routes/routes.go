package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tibeb_back_end/internal/catalog"
	"tibeb_back_end/internal/contact"
	"tibeb_back_end/internal/database"
	"tibeb_back_end/internal/handlers"
	"tibeb_back_end/internal/middleware"
	"tibeb_back_end/internal/order"
	"tibeb_back_end/internal/user"
)

// RegisterRoutes construit les stores sur le handle de connexions et
// câble toutes les routes de l'API.
func RegisterRoutes(r *gin.Engine, db *database.Stores) {
	users := user.NewScyllaStore(db.Scylla)
	cat := catalog.NewScyllaStore(db.Scylla, db.Redis, db.Elastic)
	orders := order.NewScyllaStore(db.Scylla)
	contacts := contact.NewScyllaStore(db.Scylla)
	resolver := order.NewResolver(cat, orders)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")

	// Public
	api.POST("/signup", handlers.Signup(users))
	api.POST("/signin", middleware.LoginRateLimit(db.Redis), handlers.Signin(users, db.Redis))
	api.POST("/contact", handlers.CreateContact(contacts))
	api.GET("/products", handlers.ListProducts(cat))
	api.GET("/products/:id", handlers.GetProduct(cat))
	api.GET("/products/:id/images", handlers.ProductImages(cat, db.MinIO, db.Bucket))

	// Authentifié
	auth := api.Group("", middleware.AuthRequired())
	auth.GET("/me", handlers.Me(users))
	auth.PUT("/me", handlers.UpdateMe(users))
	auth.POST("/orders", handlers.CreateOrder(resolver))
	auth.GET("/orders/my", handlers.MyOrders(orders, db.Redis, db.Scylla))

	// Admin
	admin := auth.Group("", middleware.RequireAdmin)
	admin.POST("/products", handlers.CreateProduct(cat, db.Elastic))
	admin.PUT("/products/:id", handlers.UpdateProduct(cat, db.Elastic, db.Redis))
	admin.DELETE("/products/:id", handlers.DeleteProduct(cat, db.Elastic, db.Redis))
	admin.POST("/products/:id/images", handlers.UploadProductImages(cat, db.MinIO, db.Bucket, db.Elastic))
	admin.GET("/orders", handlers.AllOrders(orders, users, db.Redis, db.Scylla))
	admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(orders))
	admin.GET("/admin/users", handlers.ListUsers(users))
	admin.GET("/admin/contacts", handlers.ListContacts(contacts))
}
