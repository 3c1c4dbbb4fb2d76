package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bakbukBack/internal/models"
	"bakbukBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Missing authenticated user", http.StatusUnauthorized)
		return
	}

	var req models.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	review, err := h.Service.SubmitReview(r.Context(), models.Review{
		ListingID:  req.ListingID,
		SellerID:   req.SellerID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidRating):
			http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		case errors.Is(err, models.ErrSelfReview):
			http.Error(w, "Sellers cannot review their own listings", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidReference):
			http.Error(w, "Listing does not belong to this seller", http.StatusBadRequest)
		case errors.Is(err, models.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrAlreadyReviewed), isDuplicateEntryError(err):
			// A concurrent duplicate can slip past the pre-insert check and
			// trip the unique key instead.
			http.Error(w, "You have already reviewed this listing", http.StatusConflict)
		case isForeignKeyConstraintError(err):
			http.Error(w, "Referenced listing or user does not exist", http.StatusBadRequest)
		default:
			log.Printf("SubmitReview error: %v", err)
			http.Error(w, "Failed to submit review", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}

func (h *ReviewHandler) GetReviewsBySellerID(w http.ResponseWriter, r *http.Request) {
	sellerID, err := strconv.Atoi(getParam(r, "seller_id"))
	if err != nil {
		http.Error(w, "Invalid seller ID", http.StatusBadRequest)
		return
	}

	reviews, err := h.Service.GetReviewsBySellerID(r.Context(), sellerID)
	if err != nil {
		log.Printf("GetReviewsBySellerID error: %v", err)
		http.Error(w, "Failed to fetch reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}
