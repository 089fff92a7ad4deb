package order

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/gocql/gocql"

	"tibeb_back_end/internal/models"
)

var ErrNotFound = errors.New("commande introuvable")

type Store interface {
	Create(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID gocql.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)

	// UpdateStatus change le statut d'une commande existante.
	// ErrNotFound si l'id est inconnu.
	UpdateStatus(ctx context.Context, orderID gocql.UUID, status string) error
}

// ScyllaStore persiste les commandes. Les lignes sont sérialisées en
// JSON dans une colonne text; une table orders_by_user sert les
// lectures par client.
type ScyllaStore struct {
	Session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{Session: session}
}

func (s *ScyllaStore) Create(ctx context.Context, o *models.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}

	if err := s.Session.Query(
		`INSERT INTO orders (order_id, user_id, lines, total_amount, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, string(lines), o.TotalAmount, o.Status, o.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.Session.Query(
		`INSERT INTO orders_by_user (user_id, created_at, order_id, lines, total_amount, status) VALUES (?, ?, ?, ?, ?, ?)`,
		o.UserID, o.CreatedAt, o.ID, string(lines), o.TotalAmount, o.Status).
		WithContext(ctx).Exec()
}

func (s *ScyllaStore) ListByUser(ctx context.Context, userID gocql.UUID) ([]models.Order, error) {
	// orders_by_user est clusterisée par created_at DESC : déjà trié.
	iter := s.Session.Query(
		`SELECT order_id, user_id, lines, total_amount, status, created_at FROM orders_by_user WHERE user_id = ?`,
		userID).WithContext(ctx).Iter()
	return scanOrders(iter)
}

func (s *ScyllaStore) ListAll(ctx context.Context) ([]models.Order, error) {
	iter := s.Session.Query(
		`SELECT order_id, user_id, lines, total_amount, status, created_at FROM orders`).
		WithContext(ctx).Iter()

	orders, err := scanOrders(iter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *ScyllaStore) UpdateStatus(ctx context.Context, orderID gocql.UUID, status string) error {
	// Les clés de clustering d'orders_by_user sont nécessaires pour
	// mettre à jour la table de lecture.
	var userID gocql.UUID
	var createdAt time.Time
	err := s.Session.Query(`SELECT user_id, created_at FROM orders WHERE order_id = ?`, orderID).
		WithContext(ctx).Scan(&userID, &createdAt)
	if err == gocql.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.Session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`, status, orderID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.Session.Query(
		`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND created_at = ? AND order_id = ?`,
		status, userID, createdAt, orderID).WithContext(ctx).Exec()
}

func scanOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	var o models.Order
	var linesJSON string

	for iter.Scan(&o.ID, &o.UserID, &linesJSON, &o.TotalAmount, &o.Status, &o.CreatedAt) {
		if err := json.Unmarshal([]byte(linesJSON), &o.Lines); err != nil {
			o.Lines = nil
		}
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}
