package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/usedcar-api/internal/models"
)

// SavedListingRepository stores user bookmarks.
type SavedListingRepository struct {
	db *sqlx.DB
}

// NewSavedListingRepository constructs a SavedListingRepository.
func NewSavedListingRepository(db *sqlx.DB) *SavedListingRepository {
	return &SavedListingRepository{db: db}
}

// Save bookmarks a car; saving twice keeps the original timestamp.
func (r *SavedListingRepository) Save(ctx context.Context, userID, carID string) error {
	const query = `INSERT INTO saved_listings (user_id, car_id, saved_at) VALUES ($1, $2, $3)
        ON CONFLICT (user_id, car_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, carID, time.Now().UTC()); err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	return nil
}

// Delete removes a bookmark, reporting whether one existed.
func (r *SavedListingRepository) Delete(ctx context.Context, userID, carID string) (bool, error) {
	const query = `DELETE FROM saved_listings WHERE user_id = $1 AND car_id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, carID)
	if err != nil {
		return false, fmt.Errorf("delete saved listing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete saved listing: %w", err)
	}
	return n > 0, nil
}

// ListCars returns the bookmarked cars, most recently saved first.
func (r *SavedListingRepository) ListCars(ctx context.Context, userID string) ([]models.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM saved_listings s JOIN cars c ON c.id = s.car_id
        WHERE s.user_id = $1 ORDER BY s.saved_at DESC`, strings.Join(carColumns("c"), ", "))
	cars := []models.Car{}
	if err := r.db.SelectContext(ctx, &cars, query, userID); err != nil {
		return nil, fmt.Errorf("list saved cars: %w", err)
	}
	return cars, nil
}
