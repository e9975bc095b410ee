package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) ListDirectories(ctx context.Context) ([]Directory, error) {
	cursor, err := s.directories.Find(ctx, notDeleted())
	if err != nil {
		return nil, fmt.Errorf("list directories: %w", err)
	}

	dirs := []Directory{}
	if err := cursor.All(ctx, &dirs); err != nil {
		return nil, fmt.Errorf("decode directories: %w", err)
	}
	return dirs, nil
}

func (s *Store) CreateDirectory(ctx context.Context, d Directory) (Directory, error) {
	now := s.now()
	d.CreatedAt = now
	d.UpdatedAt = now

	res, err := s.directories.InsertOne(ctx, d)
	if err != nil {
		return Directory{}, fmt.Errorf("insert directory: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		d.ID = id
	}
	return d, nil
}
