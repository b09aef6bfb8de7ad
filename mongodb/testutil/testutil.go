// Package testutil provisions throwaway MongoDB databases for
// repository integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SetupTestMongoDB connects to the MongoDB at TEST_MONGO_URI and returns
// a database with a per-run unique name plus a cleanup function that
// drops it. Tests are skipped when TEST_MONGO_URI is not set.
func SetupTestMongoDB(t *testing.T, dbNamePrefix string) (*mongo.Database, func()) {
	t.Helper()

	mongoURI := os.Getenv("TEST_MONGO_URI")
	if mongoURI == "" {
		t.Skip("skipping MongoDB integration test: TEST_MONGO_URI not set")
	}

	dbName := fmt.Sprintf("%s_%d", dbNamePrefix, time.Now().UnixNano())

	opts := options.Client().ApplyURI(mongoURI)
	opts.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		t.Fatalf("failed to create MongoDB client: %v (URI: %s)", err, mongoURI)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("failed to connect to MongoDB (ping failed): %v (URI: %s)", err, mongoURI)
	}

	db := client.Database(dbName)
	cleanup := func() {
		ctx := context.Background()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop database %s during cleanup: %v", dbName, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("warning: failed to disconnect test client during cleanup: %v", err)
		}
	}
	return db, cleanup
}
