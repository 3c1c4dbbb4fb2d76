package models

import (
	"strings"
	"time"
)

// Listing categories accepted by the marketplace.
const (
	CategoryWine    = "Wine"
	CategoryWhiskey = "Whiskey"
	CategoryVodka   = "Vodka"
	CategoryRum     = "Rum"
	CategoryGin     = "Gin"
	CategoryTequila = "Tequila"
	CategoryOther   = "Other"
)

var listingCategories = map[string]struct{}{
	CategoryWine:    {},
	CategoryWhiskey: {},
	CategoryVodka:   {},
	CategoryRum:     {},
	CategoryGin:     {},
	CategoryTequila: {},
	CategoryOther:   {},
}

// ConfidenceResult is the image check attached to a listing at creation.
// It is a historical record: once stored it is never recomputed, even if a
// moderator later overrides the listing status.
type ConfidenceResult struct {
	Score       float64  `json:"score"`
	Labels      []string `json:"labels"`
	Explanation string   `json:"explanation"`
}

type Listing struct {
	ID          int               `json:"id"`
	SellerID    int               `json:"seller_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Category    string            `json:"category"`
	Location    string            `json:"location"`
	ABV         float64           `json:"abv"`
	VolumeML    int               `json:"volume_ml"`
	Brand       string            `json:"brand"`
	Vintage     int               `json:"vintage"`
	IsKosher    bool              `json:"is_kosher"`
	ImageURL    string            `json:"image_url"`
	Status      string            `json:"status"`
	Confidence  *ConfidenceResult `json:"confidence,omitempty"`
	ViewCount   int               `json:"view_count"`
	Seller      struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		Phone    string  `json:"phone"`
		Rating   float64 `json:"rating"`
		Verified bool    `json:"verified"`
	} `json:"seller"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Validate checks the client-supplied listing attributes. Status, confidence
// and view count are derived server side and are not validated here.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrMissingTitle
	}
	if l.Price <= 0 {
		return ErrInvalidPrice
	}
	if _, ok := listingCategories[l.Category]; !ok {
		return ErrInvalidCategory
	}
	if l.ABV < 0 || l.ABV > 100 {
		return ErrInvalidABV
	}
	if l.VolumeML <= 0 {
		return ErrInvalidVolume
	}
	return nil
}

// SearchFilterRequest carries the optional, conjunctive public search filters.
// Zero values mean "not set".
type SearchFilterRequest struct {
	Category  string  `json:"category"`
	Search    string  `json:"search"`
	PriceFrom float64 `json:"price_from"`
	PriceTo   float64 `json:"price_to"`
	ABVFrom   float64 `json:"abv_from"`
	ABVTo     float64 `json:"abv_to"`
	MinRating float64 `json:"min_rating"`
	SortBy    string  `json:"sort_by"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

// Sort keys accepted by SearchFilterRequest.SortBy. DateDesc is the default.
const (
	SortDateDesc   = "date_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
)

type CreateListingResponse struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}
