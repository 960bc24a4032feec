package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/session"
)

// UserStore is bound to one signed-in identity. Every read and write it
// performs is restricted to rows owned by that identity.
type UserStore struct {
	db       *mongo.Database
	identity session.Identity
}

func NewUserStore(c *Client, id session.Identity) (*UserStore, error) {
	if id.Empty() {
		return nil, ErrNoSession
	}
	return &UserStore{db: c.db, identity: id}, nil
}

func (s *UserStore) owner() bson.E {
	return bson.E{Key: "user_id", Value: s.identity.UserID}
}

// CreateAppointment stores a new appointment owned by the bound identity.
// ID, owner, status and creation time are assigned here.
func (s *UserStore) CreateAppointment(ctx context.Context, apt *models.Appointment) error {
	apt.ID = uuid.NewString()
	apt.UserID = s.identity.UserID
	apt.Status = models.AppointmentScheduled
	apt.CreatedAt = time.Now().UTC()

	if _, err := s.db.Collection(colAppointments).InsertOne(ctx, apt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", translate(err))
	}
	return nil
}

// ListAppointments returns the identity's appointments, newest first.
func (s *UserStore) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	p := appointmentDetail(bson.D{s.owner()}, true, 0)
	cursor, err := s.db.Collection(colAppointments).Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.AppointmentDetail, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return out, nil
}

func (s *UserStore) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Collection(colProfiles).FindOne(ctx, bson.D{{Key: "_id", Value: s.identity.UserID}}).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
