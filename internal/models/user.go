package models

import "time"

// User represents a gym member account.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never expose this to the client
	MembershipTier *string   `json:"membershipTier"` // nil until the member picks a plan
	CreatedAt      time.Time `json:"createdAt"`
}
