package repositories

import (
	"context"
	"database/sql"
	"errors"

	"bakbukBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	query := `
		INSERT INTO users (name, email, password, phone, is_seller, is_admin, verified, rating, reviews_count, created_at)
		VALUES (?, ?, ?, ?, ?, false, false, 0, 0, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query, u.Name, u.Email, u.Password, u.Phone, u.IsSeller)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = int(id)
	u.Password = ""
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
		SELECT id, name, email, phone, is_seller, is_admin, verified, rating, reviews_count, created_at
		FROM users
		WHERE id = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.IsSeller, &u.IsAdmin,
		&u.Verified, &u.Rating, &u.ReviewsCount, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetUserByEmail includes the password hash; it backs the sign-in path.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, name, email, password, phone, is_seller, is_admin, verified, rating, reviews_count, created_at
		FROM users
		WHERE email = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.IsSeller, &u.IsAdmin,
		&u.Verified, &u.Rating, &u.ReviewsCount, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateProfile changes contact fields only. The rating column is derived by
// the review pipeline and is never written from profile input.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, name, phone string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET name = ?, phone = ? WHERE id = ?`, name, phone, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
