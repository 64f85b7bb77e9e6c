package database

import (
	"context"
	"fmt"
	"time"

	"trilhas/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the global MongoDB client used by the mongo store driver.
var MongoClient *mongo.Client

// InitDB connects to DATABASE_URL and verifies the primary is reachable.
// Change streams need a replica set, so a standalone server will fail later
// on Subscribe rather than here.
func InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetAppName("trilhas").
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo: ping %s: %w", config.AppConfig.DatabaseName, err)
	}
	MongoClient = client
	return nil
}
