package moderation

import (
	"context"
	"database/sql"

	"bakbukBack/internal/models"
)

// Status values of the listing moderation state machine.
const (
	StatusPending     = "PENDING"
	StatusNeedsReview = "NEEDS_REVIEW"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
	StatusSold        = "SOLD"
)

// Confidence score bands consumed by StatusForScore. Both edges belong to the
// higher band.
const (
	ApproveThreshold = 0.75
	ReviewThreshold  = 0.50
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusApproved:    {},
		StatusNeedsReview: {},
		StatusRejected:    {},
	},
	StatusNeedsReview: {
		StatusApproved: {},
		StatusRejected: {},
	},
	StatusApproved: {
		StatusSold: {},
	},
	StatusRejected: {},
	StatusSold:     {},
}

// CanTransition reports whether a listing may move from one status to another.
// Moderation decisions are terminal: once APPROVED or REJECTED a listing never
// returns to a review state, and repeating a decision is not a no-op but an
// error surfaced to the moderator.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// StatusForScore maps a confidence score onto the initial listing status.
func StatusForScore(score float64) string {
	switch {
	case score >= ApproveThreshold:
		return StatusApproved
	case score >= ReviewThreshold:
		return StatusNeedsReview
	default:
		return StatusRejected
	}
}

// Apply moves a listing to a new status using optimistic validation inside the
// caller's transaction. The UPDATE is guarded by the expected current status,
// so a concurrent moderator decision makes the second Apply fail instead of
// overwriting it.
func Apply(ctx context.Context, tx *sql.Tx, listingID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx, `UPDATE listings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`, toStatus, listingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
