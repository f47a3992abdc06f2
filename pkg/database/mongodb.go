package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/nawa-notice-api/pkg/config"
)

// Collection names shared by the document store repositories.
const (
	NoticesCollection = "notices"
	AdminsCollection  = "admins"
)

// MongoDB bundles a connected client with the selected database.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB connects to the configured deployment and pings the primary.
func NewMongoDB(cfg config.MongoConfig) (*MongoDB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoDB{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Ping checks that the primary is still reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes backing the role listing query.
// Keys are bson.D so that compound key order is preserved.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	notices := m.Database.Collection(NoticesCollection)
	noticeIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "targetaudience", Value: 1},
				{Key: "date", Value: -1},
			},
		},
		{Keys: bson.D{{Key: "adminID", Value: 1}}},
	}
	if _, err := notices.Indexes().CreateMany(ctx, noticeIndexes); err != nil {
		return fmt.Errorf("create notice indexes: %w", err)
	}
	return nil
}
