package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/services"
)

const (
	activeProductsKey = "products:active"
	activeProductsTTL = 10 * time.Minute
)

const selectProductCols = `product_id, name, description, price, category, images, inventory_count, is_active, created_at, updated_at`

// ScyllaStore implémente Store sur ScyllaDB, avec cache Redis du
// catalogue actif et recherche plein-texte via Elasticsearch.
type ScyllaStore struct {
	Session *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
}

func NewScyllaStore(session *gocql.Session, rdb *redis.Client, es *elasticsearch.Client) *ScyllaStore {
	return &ScyllaStore{Session: session, Redis: rdb, Elastic: es}
}

func (s *ScyllaStore) Query(ctx context.Context, f Filter, page, limit int) (Page, error) {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)

	products, err := s.loadActive(ctx)
	if err != nil {
		return Page{}, err
	}

	// Recherche plein-texte : Elasticsearch en priorité, repli sur le
	// filtrage en mémoire si l'index est indisponible.
	if f.Query != "" && s.Elastic != nil {
		if ids, err := services.SearchProductIDs(ctx, s.Elastic, f.Query); err == nil {
			allowed := make(map[gocql.UUID]bool, len(ids))
			for _, raw := range ids {
				if id, err := gocql.ParseUUID(raw); err == nil {
					allowed[id] = true
				}
			}
			kept := products[:0:0]
			for _, p := range products {
				if allowed[p.ID] {
					kept = append(kept, p)
				}
			}
			products = kept
			f.Query = "" // déjà traité par Elasticsearch
		}
	}

	matched := f.Apply(products)
	total := len(matched)

	return Page{
		Items: Paginate(matched, page, limit),
		Total: total,
		Page:  page,
		Pages: PageCount(total, limit),
	}, nil
}

func (s *ScyllaStore) GetActive(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrNotFound
	}
	return p, nil
}

// Get lit le produit sans filtrer sur is_active (usage admin).
func (s *ScyllaStore) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	return s.get(ctx, id)
}

func (s *ScyllaStore) GetActiveByIDs(ctx context.Context, ids []gocql.UUID) (map[gocql.UUID]models.Product, error) {
	out := make(map[gocql.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	uniq := make([]gocql.UUID, 0, len(ids))
	seen := make(map[gocql.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}

	// Un seul aller-retour pour tout le panier.
	iter := s.Session.Query(`SELECT `+selectProductCols+` FROM products WHERE product_id IN ?`, uniq).
		WithContext(ctx).Iter()

	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images,
		&p.InventoryCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			out[p.ID] = p
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ScyllaStore) Create(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (` + selectProductCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := s.Session.Query(query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Images,
		p.InventoryCount, p.IsActive, p.CreatedAt, p.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScyllaStore) Update(ctx context.Context, p *models.Product) error {
	if _, err := s.get(ctx, p.ID); err != nil {
		return err
	}
	query := `UPDATE products SET name = ?, description = ?, price = ?, category = ?, images = ?, inventory_count = ?, is_active = ?, updated_at = ? WHERE product_id = ?`
	if err := s.Session.Query(query,
		p.Name, p.Description, p.Price, p.Category, p.Images,
		p.InventoryCount, p.IsActive, p.UpdatedAt, p.ID).WithContext(ctx).Exec(); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SoftDelete désactive le produit; il disparaît du catalogue mais les
// commandes existantes gardent leur snapshot.
func (s *ScyllaStore) SoftDelete(ctx context.Context, id gocql.UUID) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	query := `UPDATE products SET is_active = false, updated_at = ? WHERE product_id = ?`
	if err := s.Session.Query(query, time.Now().UTC(), id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScyllaStore) AppendImages(ctx context.Context, id gocql.UUID, urls []string) (*models.Product, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = append(p.Images, urls...)
	p.UpdatedAt = time.Now().UTC()

	query := `UPDATE products SET images = ?, updated_at = ? WHERE product_id = ?`
	if err := s.Session.Query(query, p.Images, p.UpdatedAt, id).WithContext(ctx).Exec(); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ScyllaStore) get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var p models.Product
	err := s.Session.Query(`SELECT `+selectProductCols+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images,
			&p.InventoryCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// loadActive charge les produits actifs, depuis Redis si possible.
func (s *ScyllaStore) loadActive(ctx context.Context) ([]models.Product, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, activeProductsKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	iter := s.Session.Query(`SELECT ` + selectProductCols + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images,
		&p.InventoryCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
		p = models.Product{} // reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(products); err == nil {
			s.Redis.Set(ctx, activeProductsKey, data, activeProductsTTL)
		}
	}
	return products, nil
}

func (s *ScyllaStore) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, activeProductsKey).Err(); err != nil {
		log.Printf("⚠️ Invalidation cache produits échouée: %v", err)
	}
}
