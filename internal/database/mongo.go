package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

// ConnectMongo connects the client backing the progression event journal.
// The journal is best-effort: the API works without it, so callers may
// treat a failed connection as non-fatal.
func ConnectMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	MongoClient = client
	DB = client.Database("focusnow")
	log.Println("✅ Connected to MongoDB")

	if err := ensureJournalIndexes(ctx); err != nil {
		log.Printf("⚠️ Failed to create journal indexes: %v", err)
	}

	return nil
}

func ensureJournalIndexes(ctx context.Context) error {
	coll := DB.Collection("progression_events")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "timestamp", Value: -1},
		},
	})
	return err
}

// CloseMongo disconnects the client.
func CloseMongo() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		MongoClient.Disconnect(ctx)
		log.Println("MongoDB connection closed")
	}
}
