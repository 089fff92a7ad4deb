package handlers

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tibeb_back_end/internal/catalog"
	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/order"
	"tibeb_back_end/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

//
// ---------- DOUBLURES EN MÉMOIRE ----------
//

// fakeUsers implémente user.Store en mémoire.
type fakeUsers struct {
	mu    sync.Mutex
	users map[gocql.UUID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[gocql.UUID]models.User)}
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id gocql.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeUsers) Update(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) ListAll(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

// fakeCatalog implémente catalog.Store en mémoire, avec la même
// sémantique de normalisation que l'implémentation ScyllaDB.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[gocql.UUID]models.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[gocql.UUID]models.Product)}
}

func (f *fakeCatalog) Query(ctx context.Context, flt catalog.Filter, page, limit int) (catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page = catalog.NormalizePage(page)
	limit = catalog.NormalizeLimit(limit)

	var all []models.Product
	for _, p := range f.products {
		all = append(all, p)
	}
	matched := flt.Apply(all)
	total := len(matched)

	return catalog.Page{
		Items: catalog.Paginate(matched, page, limit),
		Total: total,
		Page:  page,
		Pages: catalog.PageCount(total, limit),
	}, nil
}

func (f *fakeCatalog) GetActive(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, catalog.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeCatalog) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeCatalog) GetActiveByIDs(ctx context.Context, ids []gocql.UUID) (map[gocql.UUID]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[gocql.UUID]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok && p.IsActive {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeCatalog) Create(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) Update(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) SoftDelete(ctx context.Context, id gocql.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.IsActive = false
	f.products[id] = p
	return nil
}

func (f *fakeCatalog) AppendImages(ctx context.Context, id gocql.UUID, urls []string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	p.Images = append(p.Images, urls...)
	f.products[id] = p
	cp := p
	return &cp, nil
}

// fakeOrders implémente order.Store en mémoire.
type fakeOrders struct {
	mu      sync.Mutex
	created []models.Order
}

func (f *fakeOrders) Create(ctx context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID gocql.UUID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.created {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.created...), nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID gocql.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.created {
		if f.created[i].ID == orderID {
			f.created[i].Status = status
			return nil
		}
	}
	return order.ErrNotFound
}

// asUser simule le middleware d'authentification pour les tests.
func asUser(id gocql.UUID, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id.String())
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}
