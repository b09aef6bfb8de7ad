// Package mongodb implements the token, service and job stores on top
// of MongoDB. Uniqueness of service names and urls and of job task ids
// is enforced by unique indexes, not by check-then-insert logic.
package mongodb

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/v2/mongo/otelmongo"
)

const (
	TokensCollection   = "tokens"
	ServicesCollection = "services"
	JobsCollection     = "jobs"
)

const connectTimeout = 10 * time.Second

// Client wraps a MongoDB connection with an explicit lifecycle: built
// once at startup, injected into every store, closed on shutdown.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection and creates the unique
// indexes the stores rely on.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	opts := options.Client().ApplyURI(uri)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetMonitor(otelmongo.NewMonitor())

	mc, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}

	c := &Client{client: mc, db: mc.Database(dbName)}
	if err := EnsureIndexes(ctx, c.db); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", dbName).Msg("connected to mongodb")
	return c, nil
}

// Database returns the handle the stores are built on.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping verifies the connection, for health checks.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(pingCtx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureIndexes declares the unique constraints the stores depend on:
// token strings, service names and base urls, and job task ids.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	if _, err := db.Collection(TokensCollection).Indexes().CreateOne(ctx, unique("token")); err != nil {
		return err
	}
	if _, err := db.Collection(ServicesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("name"), unique("url"),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(JobsCollection).Indexes().CreateOne(ctx, unique("task_id")); err != nil {
		return err
	}
	return nil
}
