package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/profissa/marketplace-api/internal/core/domain"
)

const connectTimeout = 10 * time.Second

// Config captures the settings for the marketplace record database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes the client, verifies connectivity with a ping, and
// bootstraps a unique index on "id" in every served collection. The store
// addresses records exclusively through that field, so the index both backs
// the lookups and rejects duplicate ids at the database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, err
	}
	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, collection := range domain.Collections {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("mongo index %s: %w", collection, err)
		}
	}
	return nil
}
