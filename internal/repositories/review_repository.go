package repositories

import (
	"context"
	"database/sql"
	"errors"

	"bakbukBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review and recomputes the seller's aggregate
// rating in one transaction. The average is always recalculated over every
// review targeting the seller rather than nudged incrementally, so the stored
// value never drifts and concurrent submissions serialize on the same
// transaction instead of racing a read-modify-write.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	var ownerID int
	err = tx.QueryRowContext(ctx, `SELECT seller_id FROM listings WHERE id = ?`, rev.ListingID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, models.ErrListingNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	if ownerID != rev.SellerID {
		return models.Review{}, models.ErrInvalidReference
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reviewer_id = ? AND listing_id = ?`,
		rev.ReviewerID, rev.ListingID,
	).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reviews (listing_id, seller_id, reviewer_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, rev.ListingID, rev.SellerID, rev.ReviewerID, rev.Rating, rev.Comment)
	if err != nil {
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)

	if _, err := tx.ExecContext(ctx, `
		UPDATE users u
		SET u.rating = (SELECT AVG(r.rating) FROM reviews r WHERE r.seller_id = ?),
		    u.reviews_count = (SELECT COUNT(*) FROM reviews r WHERE r.seller_id = ?)
		WHERE u.id = ?
	`, rev.SellerID, rev.SellerID, rev.SellerID); err != nil {
		return models.Review{}, err
	}

	// Read-after-write join for the reviewer display name.
	err = tx.QueryRowContext(ctx, `
		SELECT r.created_at, u.name
		FROM reviews r
		JOIN users u ON r.reviewer_id = u.id
		WHERE r.id = ?
	`, rev.ID).Scan(&rev.CreatedAt, &rev.ReviewerName)
	if err != nil {
		return models.Review{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

// GetReviewsBySellerID returns every review targeting the seller, newest first.
func (r *ReviewRepository) GetReviewsBySellerID(ctx context.Context, sellerID int) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.listing_id, r.seller_id, r.reviewer_id, u.name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON r.reviewer_id = u.id
		WHERE r.seller_id = ?
		ORDER BY r.created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.ListingID, &rev.SellerID, &rev.ReviewerID,
			&rev.ReviewerName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
