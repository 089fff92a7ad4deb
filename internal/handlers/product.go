package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"tibeb_back_end/internal/cache"
	"tibeb_back_end/internal/catalog"
	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/services"
)

// ListProducts sert le catalogue filtré et paginé.
// GET /api/products?q&category&minPrice&maxPrice&page&limit
func ListProducts(cat catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := catalog.Filter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
		}
		if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
			f.MinPrice = &v
		}
		if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
			f.MaxPrice = &v
		}
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		result, err := cat.Query(c.Request.Context(), f, page, limit)
		if err != nil {
			log.Println("❌ Erreur requête catalogue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetProduct retourne un produit actif. Désactivé ou absent = 404.
func GetProduct(cat catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}

		p, err := cat.GetActive(c.Request.Context(), id)
		if err == catalog.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

type productInput struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	Category       *string  `json:"category"`
	Images         []string `json:"images"`
	InventoryCount *int     `json:"inventoryCount"`
	IsActive       *bool    `json:"isActive"`
}

// CreateProduct crée un produit (admin).
func CreateProduct(cat catalog.Store, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		p := models.Product{
			ID:        gocql.TimeUUID(),
			IsActive:  true,
			Images:    input.Images,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.InventoryCount != nil {
			p.InventoryCount = *input.InventoryCount
		}
		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}

		if err := p.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := cat.Create(c.Request.Context(), &p); err != nil {
			log.Println("❌ Erreur création produit:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
			return
		}

		// Indexation Elasticsearch hors du chemin de la requête
		go services.IndexProduct(es, p)

		c.JSON(http.StatusCreated, p)
	}
}

// UpdateProduct modifie les champs fournis d'un produit (admin).
func UpdateProduct(cat catalog.Store, es *elasticsearch.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}

		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Lecture non filtrée : l'admin doit pouvoir réactiver un
		// produit désactivé via isActive.
		p, err := cat.Get(c.Request.Context(), id)
		if err == catalog.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
			return
		}

		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.Images != nil {
			p.Images = input.Images
		}
		if input.InventoryCount != nil {
			p.InventoryCount = *input.InventoryCount
		}
		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}
		p.UpdatedAt = time.Now().UTC()

		if err := p.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := cat.Update(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
			return
		}

		cache.InvalidateProductDisplay(c.Request.Context(), rdb, id)
		go services.IndexProduct(es, *p)

		c.JSON(http.StatusOK, p)
	}
}

// DeleteProduct désactive un produit (admin, soft delete).
func DeleteProduct(cat catalog.Store, es *elasticsearch.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}

		if err := cat.SoftDelete(c.Request.Context(), id); err != nil {
			if err == catalog.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
			return
		}

		cache.InvalidateProductDisplay(c.Request.Context(), rdb, id)
		go services.RemoveProductFromIndex(es, id.String())

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ProductImages retourne les URLs signées des images d'un produit actif.
// GET /api/products/:id/images
func ProductImages(cat catalog.Store, mc *minio.Client, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}

		p, err := cat.GetActive(c.Request.Context(), id)
		if err == catalog.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
			return
		}

		signed := []string{}
		for _, raw := range p.Images {
			if raw == "" {
				continue
			}
			url, err := services.GenerateSignedURL(c.Request.Context(), mc, bucket, raw, 24*time.Hour)
			if err != nil {
				continue
			}
			signed = append(signed, url)
		}

		c.JSON(http.StatusOK, gin.H{
			"product_id": p.ID.String(),
			"images":     signed,
		})
	}
}

// UploadProductImages pousse les fichiers multipart "images" vers MinIO
// et ajoute leurs URLs au produit (admin).
func UploadProductImages(cat catalog.Store, mc *minio.Client, bucket string, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gocql.ParseUUID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire multipart invalide"})
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier 'images' fourni"})
			return
		}

		urls := make([]string, 0, len(files))
		for _, file := range files {
			url, err := services.UploadProductImage(c.Request.Context(), mc, bucket, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO: " + err.Error()})
				return
			}
			urls = append(urls, url)
		}

		p, err := cat.AppendImages(c.Request.Context(), id, urls)
		if err == catalog.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
			return
		}

		go services.IndexProduct(es, *p)

		c.JSON(http.StatusOK, p)
	}
}
