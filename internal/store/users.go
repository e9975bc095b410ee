package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreateUser inserts a new account. The email unique index guards against
// duplicate registrations racing each other.
func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	filter := notDeleted()
	filter["email"] = email

	var u User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}
