package models

import (
	"errors"
)

var (
	ErrListingNotFound    = errors.New("models: listing not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrReviewNotFound     = errors.New("models: review not found")
	ErrInvalidTransition  = errors.New("models: invalid status transition")
	ErrSelfReview         = errors.New("models: seller cannot review own listing")
	ErrInvalidReference   = errors.New("models: listing does not belong to seller")
	ErrAlreadyReviewed    = errors.New("models: reviewer already reviewed this listing")
	ErrInvalidImage       = errors.New("models: image is missing or unreadable")
	ErrForbidden          = errors.New("models: operation not permitted for this user")
	ErrInvalidRating      = errors.New("models: rating must be between 1 and 5")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrInvalidCategory    = errors.New("models: unknown listing category")
	ErrSessionNotFound    = errors.New("models: session not found")
	ErrMissingTitle       = errors.New("models: title is required")
	ErrInvalidPrice       = errors.New("models: price must be positive")
	ErrInvalidABV         = errors.New("models: abv must be between 0 and 100")
	ErrInvalidVolume      = errors.New("models: volume must be positive")
)
