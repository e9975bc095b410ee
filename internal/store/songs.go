package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) ListSongs(ctx context.Context) ([]Song, error) {
	cursor, err := s.songs.Find(ctx, notDeleted())
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	songs := []Song{}
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	return songs, nil
}

// InsertSongs bulk-inserts a batch of local songs, stamping them as new.
func (s *Store) InsertSongs(ctx context.Context, songs []Song) ([]Song, error) {
	now := s.now()
	docs := make([]any, 0, len(songs))
	for i := range songs {
		songs[i].New = true
		songs[i].CreatedAt = now
		songs[i].UpdatedAt = now
		docs = append(docs, songs[i])
	}

	res, err := s.songs.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert songs: %w", err)
	}

	for i, inserted := range res.InsertedIDs {
		if id, ok := inserted.(bson.ObjectID); ok && i < len(songs) {
			songs[i].ID = id
		}
	}
	return songs, nil
}

// SetFavorite flips the favorite flag and returns the updated document.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) (Song, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Song{}, ErrNotFound
	}

	filter := notDeleted()
	filter["_id"] = objectID
	update := bson.M{"$set": bson.M{"favorite": favorite, "updatedAt": s.now()}}

	var song Song
	err = s.songs.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&song)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Song{}, ErrNotFound
		}
		return Song{}, fmt.Errorf("set favorite: %w", err)
	}
	return song, nil
}
