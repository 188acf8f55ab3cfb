package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/usedcar-api/internal/models"
)

const enquirySelect = `SELECT e.id, e.car_id, e.buyer_id, e.seller_id, e.name, e.phone, e.email, e.message, e.status, e.created_at,
        c.brand AS car_brand, c.model AS car_model
        FROM enquiries e JOIN cars c ON c.id = e.car_id`

// EnquiryRepository manages buyer enquiries.
type EnquiryRepository struct {
	db *sqlx.DB
}

// NewEnquiryRepository constructs an EnquiryRepository.
func NewEnquiryRepository(db *sqlx.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// Create inserts an enquiry.
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now().UTC()
	}
	if enquiry.Status == "" {
		enquiry.Status = models.EnquiryStatusOpen
	}
	const query = `INSERT INTO enquiries (id, car_id, buyer_id, seller_id, name, phone, email, message, status, created_at)
        VALUES (:id, :car_id, :buyer_id, :seller_id, :name, :phone, :email, :message, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enquiry); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

// ListByBuyer returns enquiries sent by a buyer, newest first.
func (r *EnquiryRepository) ListByBuyer(ctx context.Context, buyerID string) ([]models.EnquiryDetail, error) {
	query := enquirySelect + " WHERE e.buyer_id = $1 ORDER BY e.created_at DESC"
	enquiries := []models.EnquiryDetail{}
	if err := r.db.SelectContext(ctx, &enquiries, query, buyerID); err != nil {
		return nil, fmt.Errorf("list sent enquiries: %w", err)
	}
	return enquiries, nil
}

// ListBySeller returns enquiries received on a seller's listings, newest first.
func (r *EnquiryRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.EnquiryDetail, error) {
	query := enquirySelect + " WHERE e.seller_id = $1 ORDER BY e.created_at DESC"
	enquiries := []models.EnquiryDetail{}
	if err := r.db.SelectContext(ctx, &enquiries, query, sellerID); err != nil {
		return nil, fmt.Errorf("list received enquiries: %w", err)
	}
	return enquiries, nil
}

// ExistsOpen reports whether the buyer already has an open enquiry on the car.
func (r *EnquiryRepository) ExistsOpen(ctx context.Context, buyerID, carID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM enquiries WHERE buyer_id = $1 AND car_id = $2 AND status = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, buyerID, carID, models.EnquiryStatusOpen); err != nil {
		return false, fmt.Errorf("check open enquiry: %w", err)
	}
	return exists, nil
}
