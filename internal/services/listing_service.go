package services

import (
	"context"

	"bakbukBack/internal/models"
	"bakbukBack/internal/moderation"
	"bakbukBack/internal/repositories"
	"bakbukBack/internal/scorer"
)

// ImageStore persists an uploaded bottle photo and returns its public URL.
type ImageStore interface {
	UploadListingImage(image []byte, contentType string) (string, error)
}

type ListingService struct {
	ListingRepo *repositories.ListingRepository
	Scorer      scorer.Scorer
	Images      ImageStore
}

// CreateListing scores the uploaded photo, derives the initial status from
// the score and persists the listing. Scoring failures abort the whole
// operation: no listing row exists for an unreadable image.
func (s *ListingService) CreateListing(ctx context.Context, listing models.Listing, image []byte, contentType string) (models.CreateListingResponse, error) {
	if err := listing.Validate(); err != nil {
		return models.CreateListingResponse{}, err
	}

	confidence, err := s.Scorer.Score(ctx, image)
	if err != nil {
		return models.CreateListingResponse{}, err
	}
	listing.Confidence = &confidence
	listing.Status = moderation.StatusForScore(confidence.Score)

	imageURL, err := s.Images.UploadListingImage(image, contentType)
	if err != nil {
		return models.CreateListingResponse{}, err
	}
	listing.ImageURL = imageURL

	created, err := s.ListingRepo.CreateListing(ctx, listing)
	if err != nil {
		return models.CreateListingResponse{}, err
	}
	return models.CreateListingResponse{ID: created.ID, Status: created.Status}, nil
}

func (s *ListingService) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	return s.ListingRepo.GetListingByID(ctx, id)
}

func (s *ListingService) GetListingsBySellerID(ctx context.Context, sellerID int) ([]models.Listing, error) {
	return s.ListingRepo.GetListingsBySellerID(ctx, sellerID)
}

func (s *ListingService) UpdateListing(ctx context.Context, listing models.Listing, ownerID int) error {
	sellerID, err := s.ListingRepo.GetListingSellerID(ctx, listing.ID)
	if err != nil {
		return err
	}
	if sellerID != ownerID {
		return models.ErrForbidden
	}
	if err := listing.Validate(); err != nil {
		return err
	}
	return s.ListingRepo.UpdateListing(ctx, listing)
}

func (s *ListingService) DeleteListing(ctx context.Context, id, ownerID int) error {
	sellerID, err := s.ListingRepo.GetListingSellerID(ctx, id)
	if err != nil {
		return err
	}
	if sellerID != ownerID {
		return models.ErrForbidden
	}
	return s.ListingRepo.DeleteListing(ctx, id)
}

func (s *ListingService) ModerationQueue(ctx context.Context) ([]models.Listing, error) {
	return s.ListingRepo.ModerationQueue(ctx)
}

func (s *ListingService) ApproveListing(ctx context.Context, id int) error {
	return s.ListingRepo.Transition(ctx, id, moderation.StatusApproved)
}

func (s *ListingService) RejectListing(ctx context.Context, id int) error {
	return s.ListingRepo.Transition(ctx, id, moderation.StatusRejected)
}

func (s *ListingService) SearchListings(ctx context.Context, req models.SearchFilterRequest) ([]models.Listing, error) {
	return s.ListingRepo.SearchListings(ctx, req)
}
