package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mytunes-api/pkg/enum"
)

// ListEventsByStatus returns the events whose status is one of the given
// values, skipping soft-deleted documents.
func (s *Store) ListEventsByStatus(ctx context.Context, statuses []enum.EventStatus) ([]Event, error) {
	filter := notDeleted()
	filter["status"] = bson.M{"$in": statuses}

	cursor, err := s.events.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
