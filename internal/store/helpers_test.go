package store

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/models"
)

var profileFixture = models.Profile{Email: "ana@example.com", FullName: "Ana", Phone: "5551234567"}

// mongoURI skips the test unless a MongoDB instance is configured.
func mongoURI(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("Skipping MongoDB integration test - MONGODB_URI not set")
	}
	return uri
}

func connectAdmin(t *testing.T, ctx context.Context, uri, db string) *AdminClient {
	t.Helper()
	c, err := ConnectAdmin(ctx, uri, db, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	t.Cleanup(func() { c.Close(context.Background()) })
	return c
}
