package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/usedcar-api/internal/models"
)

// PackageRepository reads purchased listing packages.
type PackageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository constructs a PackageRepository.
func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// ListByUser returns a user's packages, latest purchase first.
func (r *PackageRepository) ListByUser(ctx context.Context, userID string) ([]models.ListingPackage, error) {
	const query = `SELECT id, user_id, name, listing_limit, listings_used, amount_paid, purchased_at, expires_at
        FROM listing_packages WHERE user_id = $1 ORDER BY purchased_at DESC`
	packages := []models.ListingPackage{}
	if err := r.db.SelectContext(ctx, &packages, query, userID); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}
