package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	colAppointments = "appointments"
	colServices     = "services"
	colCategories   = "service_categories"
	colProfiles     = "profiles"
	colContact      = "contact_messages"
	colAudit        = "admin_audit"
)

type conn struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Client is a connection made with the restricted database user. Its
// stores only ever filter by the caller's own identity.
type Client struct {
	conn
}

// AdminClient is a connection made with the elevated database user. Only
// server-side entry points hold the credential it needs.
type AdminClient struct {
	conn
}

// Connect opens the restricted connection.
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Client, error) {
	c, err := dial(ctx, uri, database, logger.With(zap.String("role", "restricted")))
	if err != nil {
		return nil, err
	}
	return &Client{conn: *c}, nil
}

// ConnectAdmin opens the elevated connection.
func ConnectAdmin(ctx context.Context, uri, database string, logger *zap.Logger) (*AdminClient, error) {
	c, err := dial(ctx, uri, database, logger.With(zap.String("role", "admin")))
	if err != nil {
		return nil, err
	}
	return &AdminClient{conn: *c}, nil
}

func dial(ctx context.Context, uri, database string, logger *zap.Logger) (*conn, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Minute).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Successfully connected to MongoDB", zap.String("database", database))
	return &conn{client: client, db: client.Database(database), logger: logger}, nil
}

// Close disconnects from MongoDB.
func (c *conn) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		return err
	}
	c.logger.Info("Disconnected from MongoDB")
	return nil
}
