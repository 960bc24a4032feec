package models

import "time"

type Profile struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"` // Hide from JSON responses
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (p *Profile) Role() string {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleClient
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)
