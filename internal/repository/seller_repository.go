package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/usedcar-api/internal/models"
)

// SellerRepository reads public seller profiles.
type SellerRepository struct {
	db *sqlx.DB
}

// NewSellerRepository constructs a SellerRepository.
func NewSellerRepository(db *sqlx.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// FindByID fetches a seller profile.
func (r *SellerRepository) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	const query = `SELECT id, name, seller_type, phone, email, city, state, avatar_url, verified, created_at
        FROM sellers WHERE id = $1`
	var seller models.Seller
	if err := r.db.GetContext(ctx, &seller, query, id); err != nil {
		return nil, err
	}
	return &seller, nil
}
