package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const ProductDisplayTTL = 10 * time.Minute

// ProductDisplay est le minimum nécessaire pour afficher une référence
// produit dans une liste de commandes.
type ProductDisplay struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// GetProductDisplays récupère nom et image de plusieurs produits,
// depuis Redis d'abord, ScyllaDB pour les manquants.
func GetProductDisplays(ctx context.Context, rdb *redis.Client, session *gocql.Session, ids []gocql.UUID) map[gocql.UUID]ProductDisplay {
	result := make(map[gocql.UUID]ProductDisplay, len(ids))
	var missing []gocql.UUID

	// 1. Essayer le cache Redis
	for _, id := range ids {
		if _, done := result[id]; done {
			continue
		}
		if rdb != nil {
			if data, err := rdb.Get(ctx, "product_display:"+id.String()).Result(); err == nil {
				var d ProductDisplay
				if json.Unmarshal([]byte(data), &d) == nil {
					result[id] = d
					continue
				}
			}
		}
		missing = append(missing, id)
	}

	// 2. Récupérer les manquants depuis ScyllaDB
	for _, id := range missing {
		var name string
		var images []string
		err := session.Query(`SELECT name, images FROM products WHERE product_id = ?`, id).
			WithContext(ctx).Scan(&name, &images)
		if err != nil {
			continue
		}
		d := ProductDisplay{Name: name}
		if len(images) > 0 {
			d.Image = images[0]
		}
		result[id] = d

		if rdb != nil {
			if data, err := json.Marshal(d); err == nil {
				rdb.Set(ctx, "product_display:"+id.String(), data, ProductDisplayTTL)
			}
		}
	}

	return result
}

// InvalidateProductDisplay invalide l'entrée d'un produit après une
// mutation admin.
func InvalidateProductDisplay(ctx context.Context, rdb *redis.Client, id gocql.UUID) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, "product_display:"+id.String())
}
