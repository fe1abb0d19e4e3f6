package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/auth"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/services"
)

// MembershipHandler handles HTTP requests for membership selection and status.
type MembershipHandler struct {
	service services.MembershipServiceProvider
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(service services.MembershipServiceProvider) *MembershipHandler {
	return &MembershipHandler{service: service}
}

// SelectPayload defines the structure for tier selection requests.
type SelectPayload struct {
	MembershipTier string `json:"membershipTier"`
}

// Select applies the requested membership tier for the authenticated member.
func (h *MembershipHandler) Select(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload SelectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	selection, err := h.service.SelectMembership(claims, payload.MembershipTier)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTierRequired):
			writeMessage(w, http.StatusBadRequest, "Membership tier is required")
		case errors.Is(err, services.ErrInvalidTier):
			writeMessage(w, http.StatusBadRequest, "Unknown membership tier")
		case errors.Is(err, services.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found or membership not updated")
		default:
			log.Error().Err(err).Str("email", claims.Email).Msg("Failed to select membership")
			writeMessage(w, http.StatusInternalServerError, "Server error. Try again later.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Membership selected successfully",
		"membershipTier": selection.Tier,
		"userId":         selection.UserID,
	})
}

// Status returns the authenticated member's current tier, null while unset.
func (h *MembershipHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	tier, err := h.service.GetMembershipStatus(claims)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUser):
			writeMessage(w, http.StatusBadRequest, "Invalid user")
		case errors.Is(err, services.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to get membership status")
			writeMessage(w, http.StatusInternalServerError, "Server error. Try again later.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Membership status retrieved successfully",
		"membershipTier": tier,
	})
}
