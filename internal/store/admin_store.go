package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/nail-salon-api/internal/models"
)

// AdminStore reads and writes without owner restrictions. It can only be
// built from an AdminClient.
type AdminStore struct {
	db *mongo.Database
}

func NewAdminStore(c *AdminClient) *AdminStore {
	return &AdminStore{db: c.db}
}

// EnsureIndexes creates the indexes the handlers rely on.
func (s *AdminStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(colProfiles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("profiles email index: %w", err)
	}
	_, err = s.db.Collection(colAppointments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("appointments owner index: %w", err)
	}
	return nil
}

// AppointmentDetail runs a single aggregation joining service and category.
func (s *AdminStore) AppointmentDetail(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	p := appointmentDetail(bson.D{{Key: "_id", Value: id}}, false, 1)
	cursor, err := s.db.Collection(colAppointments).Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var detail models.AppointmentDetail
	if err := cursor.Decode(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *AdminStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Email = normalizeEmail(p.Email)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.Collection(colProfiles).InsertOne(ctx, p); err != nil {
		return translate(err)
	}
	return nil
}

func (s *AdminStore) ProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.findProfile(ctx, bson.D{{Key: "email", Value: normalizeEmail(email)}})
}

func (s *AdminStore) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.findProfile(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *AdminStore) findProfile(ctx context.Context, filter bson.D) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.Collection(colProfiles).FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// SetAdmin flips the admin flag on one profile.
func (s *AdminStore) SetAdmin(ctx context.Context, id string, admin bool) error {
	res, err := s.db.Collection(colProfiles).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_admin", Value: admin}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminStore) RecordAudit(ctx context.Context, e *models.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if _, err := s.db.Collection(colAudit).InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
