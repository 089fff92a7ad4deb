package contact

import (
	"context"
	"sort"

	"github.com/gocql/gocql"

	"tibeb_back_end/internal/models"
)

type Store interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	ListAll(ctx context.Context) ([]models.ContactMessage, error)
}

type ScyllaStore struct {
	Session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{Session: session}
}

func (s *ScyllaStore) Create(ctx context.Context, m *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (message_id, full_name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`
	return s.Session.Query(query, m.ID, m.FullName, m.Email, m.Message, m.CreatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaStore) ListAll(ctx context.Context) ([]models.ContactMessage, error) {
	iter := s.Session.Query(`SELECT message_id, full_name, email, message, created_at FROM contact_messages`).
		WithContext(ctx).Iter()

	var messages []models.ContactMessage
	var m models.ContactMessage
	for iter.Scan(&m.ID, &m.FullName, &m.Email, &m.Message, &m.CreatedAt) {
		messages = append(messages, m)
		m = models.ContactMessage{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}
