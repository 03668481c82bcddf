package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"audiobio/internal/common"
	"audiobio/internal/domain/entities"
)

// MemoryUserRepository is an in-memory UserRepository with the same
// whole-record semantics as the Mongo implementation. It backs the
// engine tests and local runs without a database.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string][]byte
	saves int
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string][]byte{}}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.users[email]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	var user entities.User
	if err := bson.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	user.EnsureJournal()
	return &user, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.store(user)
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.store(user)
}

// SaveCount reports how many times Save was called. Used by tests to
// pin which operations persist.
func (r *MemoryUserRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// store snapshots the record through bson so later in-memory mutations
// of the caller's copy do not leak into the stored document, matching
// the read-modify-write behavior of a real store.
func (r *MemoryUserRepository) store(user *entities.User) error {
	raw, err := bson.Marshal(user)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = raw
	return nil
}
