package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/jobs"
)

type listingRepository interface {
	FindByID(ctx context.Context, id string) (*models.Car, error)
	ListBySeller(ctx context.Context, sellerID string, statuses ...models.CarStatus) ([]models.Car, error)
	Create(ctx context.Context, car *models.Car) error
	Update(ctx context.Context, car *models.Car) error
	UpdateStatus(ctx context.Context, id string, status models.CarStatus) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ListingService backs the "my listings" screens.
type ListingService struct {
	repo      listingRepository
	jobs      jobEnqueuer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewListingService constructs a ListingService. A nil enqueuer leaves the
// catalog to expire from cache on its own.
func NewListingService(repo listingRepository, enqueuer jobEnqueuer, validate *validator.Validate, logger *zap.Logger) *ListingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{repo: repo, jobs: enqueuer, validator: validate, logger: logger}
}

// ListMine returns every listing owned by the seller regardless of status.
func (s *ListingService) ListMine(ctx context.Context, sellerID string) ([]models.Car, error) {
	cars, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list listings")
	}
	return cars, nil
}

// Create publishes a new active listing.
func (s *ListingService) Create(ctx context.Context, sellerID string, req dto.ListingRequest) (*models.Car, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	car := &models.Car{SellerID: sellerID, Status: models.CarStatusActive}
	applyListing(car, req)
	if err := s.repo.Create(ctx, car); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create listing")
	}
	s.refresh(car.ID, "created")
	return car, nil
}

// Update rewrites a listing the seller owns. Sold and removed listings are frozen.
func (s *ListingService) Update(ctx context.Context, sellerID, carID string, req dto.ListingRequest) (*models.Car, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	car, err := s.owned(ctx, sellerID, carID)
	if err != nil {
		return nil, err
	}
	switch car.Status {
	case models.CarStatusSold:
		return nil, appErrors.ErrListingSold
	case models.CarStatusInactive:
		return nil, appErrors.Clone(appErrors.ErrConflict, "listing has been removed")
	}
	applyListing(car, req)
	if err := s.repo.Update(ctx, car); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("listing")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update listing")
	}
	s.refresh(car.ID, "updated")
	return car, nil
}

// MarkSold closes an active listing.
func (s *ListingService) MarkSold(ctx context.Context, sellerID, carID string) (*models.Car, error) {
	car, err := s.owned(ctx, sellerID, carID)
	if err != nil {
		return nil, err
	}
	switch car.Status {
	case models.CarStatusSold:
		return nil, appErrors.ErrListingSold
	case models.CarStatusInactive:
		return nil, appErrors.Clone(appErrors.ErrConflict, "listing has been removed")
	}
	if err := s.setStatus(ctx, car, models.CarStatusSold); err != nil {
		return nil, err
	}
	s.refresh(car.ID, "sold")
	return car, nil
}

// Delete withdraws a listing from the marketplace. The row is kept as inactive.
func (s *ListingService) Delete(ctx context.Context, sellerID, carID string) error {
	car, err := s.owned(ctx, sellerID, carID)
	if err != nil {
		return err
	}
	if car.Status == models.CarStatusInactive {
		return nil
	}
	if err := s.setStatus(ctx, car, models.CarStatusInactive); err != nil {
		return err
	}
	s.refresh(car.ID, "deleted")
	return nil
}

func (s *ListingService) validate(req dto.ListingRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Invalid(err, "invalid listing payload")
	}
	return nil
}

func (s *ListingService) owned(ctx context.Context, sellerID, carID string) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("listing")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load listing")
	}
	if car.SellerID != sellerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "listing belongs to another seller")
	}
	return car, nil
}

func (s *ListingService) setStatus(ctx context.Context, car *models.Car, status models.CarStatus) error {
	if err := s.repo.UpdateStatus(ctx, car.ID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound("listing")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update listing status")
	}
	car.Status = status
	return nil
}

// refresh schedules a catalog rebuild. Failures only delay visibility until
// the cache expires, so they are logged rather than returned.
func (s *ListingService) refresh(carID, reason string) {
	if s.jobs == nil {
		return
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    JobCatalogRefresh,
		Key:     JobCatalogRefresh,
		Payload: map[string]string{"carId": carID, "reason": reason},
	}
	if err := s.jobs.Enqueue(job); err != nil {
		s.logger.Warn("enqueue catalog refresh", zap.String("car_id", carID), zap.Error(err))
	}
}

func applyListing(car *models.Car, req dto.ListingRequest) {
	car.Brand = strings.TrimSpace(req.Brand)
	car.Model = strings.TrimSpace(req.Model)
	car.Variant = strings.TrimSpace(req.Variant)
	car.FuelType = req.FuelType
	car.Transmission = req.Transmission
	car.BodyType = req.BodyType
	car.Ownership = req.Ownership
	car.CarPrice = req.CarPrice
	car.ManufacturingYear = req.ManufacturingYear
	car.KmDriven = req.KmDriven
	car.Mileage = req.Mileage
	car.Seats = req.Seats
	car.Color = req.Color
	car.Description = req.Description
	car.Images = pq.StringArray(req.Images)
	car.Address = models.Address{Locality: req.Locality, City: req.City, State: req.State}
}
