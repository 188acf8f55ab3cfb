package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

type enquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	ListByBuyer(ctx context.Context, buyerID string) ([]models.EnquiryDetail, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.EnquiryDetail, error)
	ExistsOpen(ctx context.Context, buyerID, carID string) (bool, error)
}

type carFinder interface {
	FindByID(ctx context.Context, id string) (*models.Car, error)
}

// EnquiryService records buyer contact requests.
type EnquiryService struct {
	repo      enquiryRepository
	cars      carFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnquiryService constructs an EnquiryService.
func NewEnquiryService(repo enquiryRepository, cars carFinder, validate *validator.Validate, logger *zap.Logger) *EnquiryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{repo: repo, cars: cars, validator: validate, logger: logger}
}

// Create sends an enquiry about an active listing to its seller.
func (s *EnquiryService) Create(ctx context.Context, buyerID string, req dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid enquiry payload")
	}

	car, err := loadActiveCar(ctx, s.cars, req.CarID)
	if err != nil {
		return nil, err
	}
	if car.SellerID == buyerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot enquire about your own listing")
	}

	exists, err := s.repo.ExistsOpen(ctx, buyerID, car.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enquiries")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an open enquiry already exists for this car")
	}

	enquiry := &models.Enquiry{
		CarID:    car.ID,
		BuyerID:  buyerID,
		SellerID: car.SellerID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Message:  req.Message,
		Status:   models.EnquiryStatusOpen,
	}
	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enquiry")
	}
	s.logger.Info("enquiry created", zap.String("enquiry_id", enquiry.ID), zap.String("car_id", car.ID))
	return enquiry, nil
}

// ListSent returns enquiries the caller has sent.
func (s *EnquiryService) ListSent(ctx context.Context, buyerID string) ([]models.EnquiryDetail, error) {
	items, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enquiries")
	}
	return items, nil
}

// ListReceived returns enquiries on the caller's listings.
func (s *EnquiryService) ListReceived(ctx context.Context, sellerID string) ([]models.EnquiryDetail, error) {
	items, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enquiries")
	}
	return items, nil
}

// loadActiveCar resolves a car that buyers can still interact with.
func loadActiveCar(ctx context.Context, cars carFinder, id string) (*models.Car, error) {
	car, err := cars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("car")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load car")
	}
	switch car.Status {
	case models.CarStatusActive:
		return car, nil
	case models.CarStatusSold:
		return nil, appErrors.ErrListingSold
	default:
		return nil, appErrors.NotFound("car")
	}
}
