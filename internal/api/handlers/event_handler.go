package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/models"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/services"
)

const recentEventLimit = 50

// EventHandler handles HTTP requests for the activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// List returns the most recent audit events for the dashboard.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetRecentEvents(recentEventLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		writeMessage(w, http.StatusInternalServerError, "Server error. Try again later.")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
