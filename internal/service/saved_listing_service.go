package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

type savedListingRepository interface {
	Save(ctx context.Context, userID, carID string) error
	Delete(ctx context.Context, userID, carID string) (bool, error)
	ListCars(ctx context.Context, userID string) ([]models.Car, error)
}

// SavedListingService manages a user's bookmarked cars.
type SavedListingService struct {
	repo      savedListingRepository
	cars      carFinder
	validator *validator.Validate
}

// NewSavedListingService constructs a SavedListingService.
func NewSavedListingService(repo savedListingRepository, cars carFinder, validate *validator.Validate) *SavedListingService {
	if validate == nil {
		validate = validator.New()
	}
	return &SavedListingService{repo: repo, cars: cars, validator: validate}
}

// Save bookmarks a car. Saving twice is not an error.
func (s *SavedListingService) Save(ctx context.Context, userID string, req dto.SaveListingRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Invalid(err, "invalid saved listing payload")
	}
	if _, err := loadActiveCar(ctx, s.cars, req.CarID); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, userID, req.CarID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save listing")
	}
	return nil
}

// Remove deletes a bookmark.
func (s *SavedListingService) Remove(ctx context.Context, userID, carID string) error {
	removed, err := s.repo.Delete(ctx, userID, carID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove saved listing")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "listing is not saved")
	}
	return nil
}

// List returns saved cars, most recently saved first. Cars that have since been
// sold stay in the list so the user can see what happened to them.
func (s *SavedListingService) List(ctx context.Context, userID string) ([]models.Car, error) {
	cars, err := s.repo.ListCars(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list saved listings")
	}
	return cars, nil
}
