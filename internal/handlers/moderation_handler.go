package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bakbukBack/internal/models"
	"bakbukBack/internal/services"
)

// ModerationHandler exposes the human side of the approval pipeline.
type ModerationHandler struct {
	Service *services.ListingService
}

// GetQueue returns listings awaiting review, oldest submission first.
func (h *ModerationHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.ModerationQueue(r.Context())
	if err != nil {
		log.Printf("GetQueue error: %v", err)
		http.Error(w, "Failed to fetch moderation queue", http.StatusInternalServerError)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func (h *ModerationHandler) ApproveListing(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.ApproveListing)
}

func (h *ModerationHandler) RejectListing(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.RejectListing)
}

func (h *ModerationHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int) error) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := apply(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Listing already has a final moderation decision", http.StatusConflict)
		default:
			log.Printf("Moderation transition error: %v", err)
			http.Error(w, "Failed to update listing status", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
