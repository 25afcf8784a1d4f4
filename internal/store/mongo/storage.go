package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// customers and admins are disjoint namespaces; an email is unique only
	// within its own collection
	for _, coll := range []string{"customers", "admins"} {
		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		}
		if _, err := s.database.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}

	ordersIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customer._id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection("orders").Indexes().CreateMany(ctx, ordersIndexes); err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	// one revenue entry per order, enforced by the database
	revenueIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}
	if _, err := s.database.Collection("revenue").Indexes().CreateMany(ctx, revenueIndexes); err != nil {
		return fmt.Errorf("failed to create revenue indexes: %w", err)
	}

	menuIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "available", Value: 1}},
		},
	}
	if _, err := s.database.Collection("menu").Indexes().CreateMany(ctx, menuIndexes); err != nil {
		return fmt.Errorf("failed to create menu indexes: %w", err)
	}

	return nil
}
