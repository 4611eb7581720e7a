package services

import (
	"context"
	"log"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const journalCollection = "progression_events"

// JournalEvent appends a progression event to the Mongo journal.
// Best-effort: the relational state is the source of truth, the journal
// only feeds the activity feed.
func JournalEvent(event models.ProgressionEvent) {
	if database.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.DB.Collection(journalCollection).InsertOne(ctx, event); err != nil {
		log.Printf("⚠️ Failed to journal progression event: %v", err)
	}
}

// RecentActivity returns a user's newest journal entries, newest first.
func RecentActivity(ctx context.Context, userID string, limit int) ([]models.ProgressionEvent, error) {
	if database.DB == nil {
		return []models.ProgressionEvent{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := database.DB.Collection(journalCollection).Find(ctx,
		bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.ProgressionEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
