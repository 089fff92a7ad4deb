package user

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gocql/gocql"

	"tibeb_back_end/internal/models"
)

var (
	ErrNotFound   = errors.New("utilisateur introuvable")
	ErrEmailTaken = errors.New("email déjà utilisé")
)

type Store interface {
	// Create échoue avec ErrEmailTaken si l'email est déjà pris.
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id gocql.UUID) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	ListAll(ctx context.Context) ([]models.User, error)
}

const selectUserCols = `user_id, first_name, last_name, email, password_hash, role, created_at`

type ScyllaStore struct {
	Session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{Session: session}
}

func (s *ScyllaStore) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	// Vérification d'unicité via la table users_by_email.
	// Pas de garantie transactionnelle entre la vérification et
	// l'insertion — trade-off assumé, comme le reste du système.
	var existing gocql.UUID
	err := s.Session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, u.Email).
		WithContext(ctx).Scan(&existing)
	if err == nil {
		return ErrEmailTaken
	}
	if err != gocql.ErrNotFound {
		return err
	}

	if err := s.Session.Query(`INSERT INTO users (`+selectUserCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.Session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		u.Email, u.ID).WithContext(ctx).Exec()
}

func (s *ScyllaStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var id gocql.UUID
	err := s.Session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&id)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ScyllaStore) GetByID(ctx context.Context, id gocql.UUID) (*models.User, error) {
	var u models.User
	err := s.Session.Query(`SELECT `+selectUserCols+` FROM users WHERE user_id = ?`, id).
		WithContext(ctx).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update ne touche qu'aux champs de profil; email et hash passent par
// des chemins dédiés.
func (s *ScyllaStore) Update(ctx context.Context, u *models.User) error {
	return s.Session.Query(`UPDATE users SET first_name = ?, last_name = ? WHERE user_id = ?`,
		u.FirstName, u.LastName, u.ID).WithContext(ctx).Exec()
}

func (s *ScyllaStore) ListAll(ctx context.Context) ([]models.User, error) {
	iter := s.Session.Query(`SELECT ` + selectUserCols + ` FROM users`).WithContext(ctx).Iter()

	var users []models.User
	var u models.User
	for iter.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt) {
		users = append(users, u)
		u = models.User{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}
