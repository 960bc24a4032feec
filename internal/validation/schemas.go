package validation

import (
	"errors"
	"strings"
	"time"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required,min=10"`
}

type AppointmentInput struct {
	ServiceID string    `json:"service_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Time      string    `json:"time" validate:"required"`
	Notes     string    `json:"notes" validate:"max=500"`
	Deposit   *bool     `json:"deposit"`
}

const clockLayout = "15:04"

var errTimeFormat = errors.New("time must be in HH:MM format")

// ScheduledAt combines the calendar day of Date with the HH:MM Time.
func (in AppointmentInput) ScheduledAt() (time.Time, error) {
	clock, err := time.Parse(clockLayout, strings.TrimSpace(in.Time))
	if err != nil {
		return time.Time{}, errTimeFormat
	}
	d := in.Date
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, d.Location()).UTC(), nil
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=10"`
	Message string `json:"message" validate:"required,min=10"`
}

type EmailDiagnosticsInput struct {
	Email       string `json:"email" validate:"required,email"`
	FromAddress string `json:"fromAddress" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	HTML        string `json:"html" validate:"required"`
}
