package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/auth"
)

// validTiers is the closed set of membership plans the gym sells.
var validTiers = map[string]bool{
	"basic":    true,
	"standard": true,
	"premium":  true,
}

// MembershipSelection confirms an applied tier change.
type MembershipSelection struct {
	UserID string `json:"userId"`
	Tier   string `json:"membershipTier"`
}

// MembershipServiceProvider defines the interface for membership services.
type MembershipServiceProvider interface {
	SelectMembership(claims *auth.Claims, tier string) (MembershipSelection, error)
	GetMembershipStatus(claims *auth.Claims) (*string, error)
}

// MembershipService updates and reads a member's tier. Concurrent updates
// for the same user are last-writer-wins at the storage layer; there is no
// version check.
type MembershipService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(db *sql.DB, events EventServiceProvider) *MembershipService {
	return &MembershipService{db: db, events: events}
}

// ResolveUser turns verified claims into a user ID. The ID embedded in the
// token wins; older tokens that only carry an email fall back to a lookup.
func (s *MembershipService) ResolveUser(claims *auth.Claims) (string, error) {
	if claims.UserID != "" {
		return claims.UserID, nil
	}
	if claims.Email == "" {
		return "", ErrUserNotFound
	}

	var id string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", claims.Email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return id, nil
}

// SelectMembership sets the member's tier. Any tier may move to any other
// tier; re-selecting the current tier is a no-op that still succeeds.
func (s *MembershipService) SelectMembership(claims *auth.Claims, tier string) (MembershipSelection, error) {
	if tier == "" {
		return MembershipSelection{}, ErrTierRequired
	}
	if !validTiers[tier] {
		return MembershipSelection{}, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}

	userID, err := s.ResolveUser(claims)
	if err != nil {
		return MembershipSelection{}, err
	}

	res, err := s.db.Exec("UPDATE users SET membership_tier = ? WHERE id = ?", tier, userID)
	if err != nil {
		return MembershipSelection{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return MembershipSelection{}, err
	}
	// The user can disappear between resolution and update.
	if affected == 0 {
		return MembershipSelection{}, ErrUserNotFound
	}

	if s.events != nil {
		msg := fmt.Sprintf("Membership tier set to %s", tier)
		if err := s.events.CreateEvent("membership.select", "info", msg, &userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to record membership event")
		}
	}

	return MembershipSelection{UserID: userID, Tier: tier}, nil
}

// GetMembershipStatus returns the member's current tier, nil while unset.
// Unlike SelectMembership there is no email fallback: a token without a user
// ID cannot read status.
func (s *MembershipService) GetMembershipStatus(claims *auth.Claims) (*string, error) {
	if claims.UserID == "" {
		return nil, ErrInvalidUser
	}

	var tier sql.NullString
	err := s.db.QueryRow("SELECT membership_tier FROM users WHERE id = ?", claims.UserID).Scan(&tier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !tier.Valid {
		return nil, nil
	}
	return &tier.String, nil
}
