package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the application.
const (
	UsersCollection     = "users"
	FunnelsCollection   = "funnels"
	PagesCollection     = "pages"
	AnalyticsCollection = "analytics"
	TemplatesCollection = "templates"
	AssetsCollection    = "assets"
)

// Connect establishes the MongoDB connection and verifies it with a ping.
// The returned client must be disconnected by the caller on shutdown.
func Connect(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("MongoDB connection failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	return client, client.Database(dbName), nil
}

// Disconnect closes the client connection with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
