package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bakbukBack/internal/models"
	"bakbukBack/internal/repositories"
	"bakbukBack/utils"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	SessionRepo  *repositories.SessionRepository
	TokenManager *utils.Manager
}

func roleFor(u models.User) string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	_, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return models.AuthResponse{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hash),
		Phone:    req.Phone,
		IsSeller: req.IsSeller,
	})
	if err != nil {
		return models.AuthResponse{}, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	user.Password = ""
	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	role := roleFor(user)
	accessToken, err := s.TokenManager.NewAccessToken(user.ID, role, accessTokenTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.SessionRepo.SaveSession(ctx, session, refreshTokenTTL); err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int, req models.UpdateProfileRequest) error {
	return s.UserRepo.UpdateProfile(ctx, id, req.Name, req.Phone)
}

func (s *UserService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.SessionRepo.DeleteSession(ctx, refreshToken)
}
