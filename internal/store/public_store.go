package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/nail-salon-api/internal/models"
)

// PublicStore covers what an anonymous visitor may touch: the service
// catalog and the contact inbox.
type PublicStore struct {
	db *mongo.Database
}

func NewPublicStore(c *Client) *PublicStore {
	return &PublicStore{db: c.db}
}

// ListServices returns services joined with their category, optionally
// restricted to one category.
func (s *PublicStore) ListServices(ctx context.Context, categoryID string) ([]models.ServiceDetail, error) {
	var p mongo.Pipeline
	if categoryID != "" {
		p = append(p, bson.D{{Key: "$match", Value: bson.D{{Key: "category_id", Value: categoryID}}}})
	}
	p = append(p, bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}})
	p = append(p, serviceJoin()...)

	cursor, err := s.db.Collection(colServices).Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.ServiceDetail, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return out, nil
}

func (s *PublicStore) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.db.Collection(colCategories).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.ServiceCategory, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return out, nil
}

func (s *PublicStore) ServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.db.Collection(colServices).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&svc)
	if err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (s *PublicStore) SaveContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.Collection(colContact).InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}
