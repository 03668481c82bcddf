package repository

import (
	"context"

	"audiobio/internal/domain/entities"
)

// UserRepository loads and persists whole user records. The nested
// journal store travels with the record: every Save writes the entire
// document in one call, so a mutation is atomic at record granularity.
//
// Concurrency contract: the engine applies no locking or versioning.
// Two concurrent mutations for the same user race at whole-record
// granularity and resolve to last-write-wins; at most one in-flight
// mutation per user is safe without an external lock. Mutations for
// different users are fully independent.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
	Save(ctx context.Context, user *entities.User) error
}
