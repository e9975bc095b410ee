// Package store holds the MongoDB repositories behind the HTTP handlers.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const (
	usersCollection       = "users"
	songsCollection       = "songs"
	directoriesCollection = "directories"
	eventsCollection      = "events"
)

type Store struct {
	users       *mongo.Collection
	songs       *mongo.Collection
	directories *mongo.Collection
	events      *mongo.Collection
	now         func() time.Time
}

// Connect dials MongoDB, verifies the connection and returns a Store over
// the named database plus a close function.
func Connect(ctx context.Context, uri, database string) (*Store, func(), error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	closeFn := func() {
		_ = client.Disconnect(context.Background())
	}
	return New(client.Database(database)), closeFn, nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:       db.Collection(usersCollection),
		songs:       db.Collection(songsCollection),
		directories: db.Collection(directoriesCollection),
		events:      db.Collection(eventsCollection),
		now:         time.Now,
	}
}

// EnsureIndexes creates the unique constraints the handlers rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(col *mongo.Collection, field string) error {
		_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}

	if err := unique(s.users, "email"); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	if err := unique(s.songs, "file"); err != nil {
		return fmt.Errorf("songs file index: %w", err)
	}
	return nil
}

// notDeleted excludes soft-deleted documents from every read.
func notDeleted() bson.M {
	return bson.M{"deleted": bson.M{"$ne": true}}
}
