package service

import (
	"context"
	"time"

	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

type packageRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.ListingPackage, error)
}

// PackageService exposes the listing packages a user has bought.
type PackageService struct {
	repo packageRepository
	now  func() time.Time
}

// NewPackageService constructs a PackageService.
func NewPackageService(repo packageRepository) *PackageService {
	return &PackageService{repo: repo, now: time.Now}
}

// ListBought returns the user's packages with Active derived from the expiry.
func (s *PackageService) ListBought(ctx context.Context, userID string) ([]models.ListingPackage, error) {
	packages, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list packages")
	}
	now := s.now()
	for i := range packages {
		packages[i].Active = packages[i].ExpiresAt.After(now)
	}
	return packages, nil
}
