package users

import (
	"context"
	"sync"
	"time"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/server/models"
)

// InMemoryRepository is a map-backed Repository for tests. All access is
// serialized behind one mutex.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[int64]models.User)}
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, common.ErrorInternal
		}
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.byID[user.ID] = *user
	out := *user
	return &out, nil
}

func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := u
	return &out, nil
}

func (r *InMemoryRepository) UpdatePasswordHash(_ context.Context, id int64, encoded string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = encoded
	r.byID[id] = u
	return nil
}
