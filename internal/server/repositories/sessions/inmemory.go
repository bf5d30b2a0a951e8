package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/server/models"
)

// InMemoryRepository is a map-backed Repository for tests and degraded
// single-process setups. All access is serialized behind one mutex; the
// lock is never held across blocking I/O because there is none.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byTok  map[string]models.Session
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byTok: make(map[string]models.Session)}
}

func (r *InMemoryRepository) Create(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.byTok[token] = models.Session{
		ID:        r.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *InMemoryRepository) FindValid(_ context.Context, token string, now time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.byTok[token]
	if !ok || !sess.ExpiresAt.After(now) {
		return nil, common.ErrorNotFound
	}
	out := sess
	return &out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byTok, token)
	return nil
}

func (r *InMemoryRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tok, sess := range r.byTok {
		if sess.UserID == userID {
			delete(r.byTok, tok)
		}
	}
	return nil
}
