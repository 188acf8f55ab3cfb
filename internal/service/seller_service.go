package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

type sellerRepository interface {
	FindByID(ctx context.Context, id string) (*models.Seller, error)
}

type sellerCarReader interface {
	ListBySeller(ctx context.Context, sellerID string, statuses ...models.CarStatus) ([]models.Car, error)
	CountBySellerStatus(ctx context.Context, sellerID string, status models.CarStatus) (int, error)
}

// SellerService builds the public seller page.
type SellerService struct {
	sellers sellerRepository
	cars    sellerCarReader
	logger  *zap.Logger
}

// NewSellerService constructs a SellerService.
func NewSellerService(sellers sellerRepository, cars sellerCarReader, logger *zap.Logger) *SellerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellerService{sellers: sellers, cars: cars, logger: logger}
}

// Profile returns the seller with their active listings, newest first.
func (s *SellerService) Profile(ctx context.Context, sellerID string) (*models.SellerProfile, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("seller")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seller")
	}

	listings, err := s.cars.ListBySeller(ctx, sellerID, models.CarStatusActive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seller listings")
	}

	sold, err := s.cars.CountBySellerStatus(ctx, sellerID, models.CarStatusSold)
	if err != nil {
		// the sold badge is cosmetic
		s.logger.Warn("count sold listings", zap.String("seller_id", sellerID), zap.Error(err))
	}

	return &models.SellerProfile{Seller: *seller, Listings: listings, Sold: sold}, nil
}
