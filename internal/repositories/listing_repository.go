package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bakbukBack/internal/models"
	"bakbukBack/internal/moderation"
)

type ListingRepository struct {
	DB *sql.DB
}

const listingColumns = `l.id, l.seller_id, l.title, l.description, l.price, l.category, l.location,
	       l.abv, l.volume_ml, l.brand, l.vintage, l.is_kosher, l.image_url, l.status,
	       l.confidence, l.view_count, l.created_at, l.updated_at,
	       u.id, u.name, u.phone, u.rating, u.verified`

// CreateListing inserts the listing row together with its derived status and
// the confidence snapshot in a single statement, so no listing is ever
// observable without a status.
func (r *ListingRepository) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	confidence, err := marshalConfidence(l.Confidence)
	if err != nil {
		return models.Listing{}, err
	}

	query := `
		INSERT INTO listings
			(seller_id, title, description, price, category, location, abv, volume_ml,
			 brand, vintage, is_kosher, image_url, status, confidence, view_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		l.SellerID, l.Title, l.Description, l.Price, l.Category, l.Location, l.ABV, l.VolumeML,
		l.Brand, l.Vintage, l.IsKosher, l.ImageURL, l.Status, confidence,
	)
	if err != nil {
		return models.Listing{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Listing{}, err
	}
	l.ID = int(id)
	l.ViewCount = 0

	// Read the timestamp back so the returned struct matches the row.
	if err := r.DB.QueryRowContext(ctx,
		`SELECT created_at FROM listings WHERE id = ?`, l.ID,
	).Scan(&l.CreatedAt); err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// GetListingByID returns the listing joined with its seller. For an approved
// listing the view counter is incremented first, inside the same transaction
// as the read, so concurrent readers never lose an increment and the returned
// snapshot already includes it. Non-approved listings are returned unchanged;
// an owner checking a pending listing does not inflate the public count.
func (r *ListingRepository) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Listing{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE listings SET view_count = view_count + 1 WHERE id = ? AND status = ?`,
		id, moderation.StatusApproved,
	); err != nil {
		return models.Listing{}, err
	}

	l, err := scanListing(tx.QueryRowContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		JOIN users u ON l.seller_id = u.id
		WHERE l.id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, models.ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// GetListingSellerID reads only the owner reference, for ownership checks.
func (r *ListingRepository) GetListingSellerID(ctx context.Context, id int) (int, error) {
	var sellerID int
	err := r.DB.QueryRowContext(ctx, `SELECT seller_id FROM listings WHERE id = ?`, id).Scan(&sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrListingNotFound
	}
	if err != nil {
		return 0, err
	}
	return sellerID, nil
}

// GetListingsBySellerID returns a seller's own listings regardless of status.
func (r *ListingRepository) GetListingsBySellerID(ctx context.Context, sellerID int) ([]models.Listing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		JOIN users u ON l.seller_id = u.id
		WHERE l.seller_id = ?
		ORDER BY l.created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// UpdateListing rewrites the descriptive attributes only. Status, confidence
// and view_count have their own write paths and are never touched here.
func (r *ListingRepository) UpdateListing(ctx context.Context, l models.Listing) error {
	query := `
		UPDATE listings
		SET title = ?, description = ?, price = ?, category = ?, location = ?,
		    abv = ?, volume_ml = ?, brand = ?, vintage = ?, is_kosher = ?, updated_at = NOW()
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.Price, l.Category, l.Location,
		l.ABV, l.VolumeML, l.Brand, l.Vintage, l.IsKosher, l.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

// DeleteListing removes the listing and, through the cascade, its reviews.
// The seller aggregate is recomputed in the same transaction so a removed
// listing's reviews stop counting toward the rating immediately.
func (r *ListingRepository) DeleteListing(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sellerID int
	err = tx.QueryRowContext(ctx, `SELECT seller_id FROM listings WHERE id = ?`, id).Scan(&sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrListingNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users u
		SET u.rating = (SELECT COALESCE(AVG(r.rating), 0) FROM reviews r WHERE r.seller_id = ?),
		    u.reviews_count = (SELECT COUNT(*) FROM reviews r WHERE r.seller_id = ?)
		WHERE u.id = ?
	`, sellerID, sellerID, sellerID); err != nil {
		return err
	}

	return tx.Commit()
}

// ModerationQueue returns listings awaiting a human decision, oldest first,
// so reviewers work through submissions in arrival order.
func (r *ListingRepository) ModerationQueue(ctx context.Context) ([]models.Listing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		JOIN users u ON l.seller_id = u.id
		WHERE l.status = ?
		ORDER BY l.created_at ASC
	`, moderation.StatusNeedsReview)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// Transition applies a moderator decision. The current status is read and the
// guarded UPDATE runs in one transaction; a concurrent decision on the same
// listing makes the guarded UPDATE miss, which surfaces as an invalid
// transition instead of silently overwriting.
func (r *ListingRepository) Transition(ctx context.Context, id int, toStatus string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM listings WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrListingNotFound
	}
	if err != nil {
		return err
	}

	if err := moderation.Apply(ctx, tx, id, current, toStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrInvalidTransition
		}
		return err
	}
	return tx.Commit()
}

// SearchListings composes the public search. The scope is always approved
// listings; each optional filter contributes one parameterized condition.
func (r *ListingRepository) SearchListings(ctx context.Context, req models.SearchFilterRequest) ([]models.Listing, error) {
	conditions, params := searchConditions(req)

	query := `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON l.seller_id = u.id
		WHERE l.status = ?
	`
	queryParams := append([]interface{}{moderation.StatusApproved}, params...)
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += sortClause(req.SortBy)

	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	query += " LIMIT ? OFFSET ?"
	queryParams = append(queryParams, limit, (page-1)*limit)

	rows, err := r.DB.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func searchConditions(req models.SearchFilterRequest) ([]string, []interface{}) {
	var (
		conditions []string
		params     []interface{}
	)

	if req.Category != "" && req.Category != "All" {
		conditions = append(conditions, "l.category = ?")
		params = append(params, req.Category)
	}
	if req.Search != "" {
		conditions = append(conditions, "LOWER(l.title) LIKE ?")
		params = append(params, "%"+strings.ToLower(req.Search)+"%")
	}
	if req.PriceFrom > 0 {
		conditions = append(conditions, "l.price >= ?")
		params = append(params, req.PriceFrom)
	}
	if req.PriceTo > 0 {
		conditions = append(conditions, "l.price <= ?")
		params = append(params, req.PriceTo)
	}
	if req.ABVFrom > 0 {
		conditions = append(conditions, "l.abv >= ?")
		params = append(params, req.ABVFrom)
	}
	if req.ABVTo > 0 {
		conditions = append(conditions, "l.abv <= ?")
		params = append(params, req.ABVTo)
	}
	if req.MinRating > 0 {
		conditions = append(conditions, "u.rating >= ?")
		params = append(params, req.MinRating)
	}
	return conditions, params
}

func sortClause(sortBy string) string {
	switch sortBy {
	case models.SortPriceAsc:
		return " ORDER BY l.price ASC"
	case models.SortPriceDesc:
		return " ORDER BY l.price DESC"
	case models.SortRatingDesc:
		return " ORDER BY u.rating DESC"
	default:
		return " ORDER BY l.created_at DESC"
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (models.Listing, error) {
	var (
		l          models.Listing
		confidence sql.NullString
	)
	err := row.Scan(
		&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Price, &l.Category, &l.Location,
		&l.ABV, &l.VolumeML, &l.Brand, &l.Vintage, &l.IsKosher, &l.ImageURL, &l.Status,
		&confidence, &l.ViewCount, &l.CreatedAt, &l.UpdatedAt,
		&l.Seller.ID, &l.Seller.Name, &l.Seller.Phone, &l.Seller.Rating, &l.Seller.Verified,
	)
	if err != nil {
		return models.Listing{}, err
	}
	if confidence.Valid && confidence.String != "" {
		var cr models.ConfidenceResult
		if err := json.Unmarshal([]byte(confidence.String), &cr); err != nil {
			return models.Listing{}, fmt.Errorf("listing %d: decode confidence: %w", l.ID, err)
		}
		l.Confidence = &cr
	}
	return l, nil
}

func collectListings(rows *sql.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func marshalConfidence(cr *models.ConfidenceResult) (interface{}, error) {
	if cr == nil {
		return nil, nil
	}
	data, err := json.Marshal(cr)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
