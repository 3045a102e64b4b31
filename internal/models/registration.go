// internal/models/registration.go
// Registration entity — the Chop/Reserve/Confirmed waitlist tiers.

package models

import "time"

// RegistrationState is the waitlist tier. Chop maps to Pending, Reserve to
// Interested, Confirmed to Approved.
type RegistrationState string

const (
	RegInterested RegistrationState = "interested"
	RegPending    RegistrationState = "pending"
	RegApproved   RegistrationState = "approved"
	RegRejected   RegistrationState = "rejected"
	RegDropped    RegistrationState = "dropped"
)

// Registration is one player's registration for one event. The pair
// (EventID, PlayerID) is unique.
type Registration struct {
	EventID          string            `json:"event_id" db:"event_id"`
	PlayerID         string            `json:"player_id" db:"player_id"`
	Username         string            `json:"username" db:"username"`
	Army             string            `json:"army" db:"army"`
	Detachment       string            `json:"detachment" db:"detachment"`
	ListText         string            `json:"list_text" db:"list_text"`
	State            RegistrationState `json:"state" db:"state"`
	SubmittedAt      *time.Time        `json:"submitted_at,omitempty" db:"submitted_at"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty" db:"approved_at"`
	DroppedAt        *time.Time        `json:"dropped_at,omitempty" db:"dropped_at"`
	RejectionReason  string            `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReviewToken      string            `json:"review_token,omitempty" db:"review_token"`
	ChopThreadRef    string            `json:"chop_thread_ref,omitempty" db:"chop_thread_ref"`
}
