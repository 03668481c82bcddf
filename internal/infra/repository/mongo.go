package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"audiobio/internal/common"
	"audiobio/internal/domain/entities"
)

const usersCollection = "users"

// MongoUserRepository stores one document per user in the users
// collection, keyed by email. The whole nested journal is part of that
// document, so Save is a single ReplaceOne.
type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection(usersCollection)}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	filter := bson.M{"email": email}
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	user.EnsureJournal()
	return &user, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *entities.User) error {
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Save replaces the entire user document. Upsert keeps Save usable for
// records created outside this repository instance.
func (r *MongoUserRepository) Save(ctx context.Context, user *entities.User) error {
	filter := bson.M{"email": user.Email}
	_, err := r.users.ReplaceOne(ctx, filter, user, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}
