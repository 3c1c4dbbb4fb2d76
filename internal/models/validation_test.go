package models

import (
	"errors"
	"testing"
)

func validListing() Listing {
	return Listing{
		Title:    "Macallan 18",
		Price:    450,
		Category: CategoryWhiskey,
		ABV:      43,
		VolumeML: 700,
	}
}

func TestListingValidate(t *testing.T) {
	if err := validListing().Validate(); err != nil {
		t.Fatalf("valid listing rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr error
	}{
		{"empty title", func(l *Listing) { l.Title = "   " }, ErrMissingTitle},
		{"zero price", func(l *Listing) { l.Price = 0 }, ErrInvalidPrice},
		{"negative price", func(l *Listing) { l.Price = -5 }, ErrInvalidPrice},
		{"unknown category", func(l *Listing) { l.Category = "Soda" }, ErrInvalidCategory},
		{"negative abv", func(l *Listing) { l.ABV = -1 }, ErrInvalidABV},
		{"abv over 100", func(l *Listing) { l.ABV = 101 }, ErrInvalidABV},
		{"zero volume", func(l *Listing) { l.VolumeML = 0 }, ErrInvalidVolume},
	}
	for _, tt := range tests {
		l := validListing()
		tt.mutate(&l)
		if err := l.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestReviewValidate(t *testing.T) {
	r := Review{ListingID: 1, SellerID: 2, ReviewerID: 3, Rating: 4}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}

	r.Rating = 0
	if err := r.Validate(); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	r.Rating = 6
	if err := r.Validate(); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}

	r.Rating = 5
	r.ReviewerID = r.SellerID
	if err := r.Validate(); !errors.Is(err, ErrSelfReview) {
		t.Fatalf("expected ErrSelfReview, got %v", err)
	}
}
