package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	Phone        string    `json:"phone"`
	IsSeller     bool      `json:"is_seller"`
	IsAdmin      bool      `json:"is_admin"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Claims struct {
	jwt.StandardClaims
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// Session is a refresh-token session kept in Redis with a TTL.
type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	IsSeller bool   `json:"is_seller"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
