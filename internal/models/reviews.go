package models

import (
	"time"
)

type Review struct {
	ID           int       `json:"id"`
	ListingID    int       `json:"listing_id"`
	SellerID     int       `json:"seller_id"`
	ReviewerID   int       `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the client-controlled review fields. Reference checks
// (listing ownership, self-review) happen against the store.
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.ReviewerID == r.SellerID {
		return ErrSelfReview
	}
	return nil
}

type SubmitReviewRequest struct {
	ListingID int    `json:"listing_id"`
	SellerID  int    `json:"seller_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
