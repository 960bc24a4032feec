package models

import "time"

const AppointmentScheduled = "scheduled"

type Appointment struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	ServiceID   string    `bson:"service_id" json:"service_id"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"` // HH:MM, salon local
	ScheduledAt time.Time `bson:"scheduled_at" json:"scheduled_at"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Deposit     bool      `bson:"deposit" json:"deposit"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// AppointmentDetail is an appointment joined with its service and the
// service's category. JSON keys follow the related collection names.
type AppointmentDetail struct {
	Appointment `bson:",inline"`
	Service     *ServiceDetail `bson:"services,omitempty" json:"services"`
}
