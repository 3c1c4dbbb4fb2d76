package services

import (
	"context"

	"bakbukBack/internal/models"
	"bakbukBack/internal/repositories"
)

type ReviewService struct {
	ReviewsRepo *repositories.ReviewRepository
}

func (s *ReviewService) SubmitReview(ctx context.Context, review models.Review) (models.Review, error) {
	if err := review.Validate(); err != nil {
		return models.Review{}, err
	}
	return s.ReviewsRepo.CreateReview(ctx, review)
}

func (s *ReviewService) GetReviewsBySellerID(ctx context.Context, sellerID int) ([]models.Review, error) {
	return s.ReviewsRepo.GetReviewsBySellerID(ctx, sellerID)
}
