package models

import "time"

const (
	AuditSucceeded = "succeeded"
	AuditFailed    = "failed"
)

// AuditEntry records one administrative action taken by an operator.
type AuditEntry struct {
	ID          string    `bson:"_id" json:"id"`
	Operator    string    `bson:"operator" json:"operator"`
	Action      string    `bson:"action" json:"action"`
	TargetEmail string    `bson:"target_email" json:"target_email"`
	TargetID    string    `bson:"target_id,omitempty" json:"target_id,omitempty"`
	Outcome     string    `bson:"outcome" json:"outcome"`
	Detail      string    `bson:"detail,omitempty" json:"detail,omitempty"`
	At          time.Time `bson:"at" json:"at"`
}
