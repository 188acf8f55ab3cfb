package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/usedcar-api/internal/models"
)

const carsTable = "cars"

// carColumns returns the projection scanned into models.Car, optionally
// qualified with a table alias.
func carColumns(alias string) []string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	return []string{
		p + "id", p + "seller_id", p + "brand", p + "model", p + "variant",
		p + "fuel_type", p + "transmission", p + "body_type", p + "ownership",
		p + "car_price", p + "manufacturing_year", p + "km_driven", p + "mileage", p + "seats",
		p + "color", p + "description", p + "images",
		p + `locality AS "address.locality"`, p + `city AS "address.city"`, p + `state AS "address.state"`,
		p + "status", p + "created_at", p + "updated_at",
	}
}

// CarRepository manages persistence for car listings.
type CarRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewCarRepository constructs a CarRepository.
func NewCarRepository(db *sqlx.DB) *CarRepository {
	return &CarRepository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// ListActive returns every listing open for browsing, newest first.
func (r *CarRepository) ListActive(ctx context.Context) ([]models.Car, error) {
	query, args, err := r.sb.Select(carColumns("")...).
		From(carsTable).
		Where(sq.Eq{"status": models.CarStatusActive}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active cars query: %w", err)
	}
	cars := []models.Car{}
	if err := r.db.SelectContext(ctx, &cars, query, args...); err != nil {
		return nil, fmt.Errorf("list active cars: %w", err)
	}
	return cars, nil
}

// FindByID fetches a listing regardless of status.
func (r *CarRepository) FindByID(ctx context.Context, id string) (*models.Car, error) {
	query, args, err := r.sb.Select(carColumns("")...).
		From(carsTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build car query: %w", err)
	}
	var car models.Car
	if err := r.db.GetContext(ctx, &car, query, args...); err != nil {
		return nil, err
	}
	return &car, nil
}

// ListBySeller returns a seller's listings, optionally restricted to statuses.
func (r *CarRepository) ListBySeller(ctx context.Context, sellerID string, statuses ...models.CarStatus) ([]models.Car, error) {
	q := r.sb.Select(carColumns("")...).
		From(carsTable).
		Where(sq.Eq{"seller_id": sellerID}).
		OrderBy("created_at DESC", "id")
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		q = q.Where(sq.Eq{"status": values})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build seller cars query: %w", err)
	}
	cars := []models.Car{}
	if err := r.db.SelectContext(ctx, &cars, query, args...); err != nil {
		return nil, fmt.Errorf("list seller cars: %w", err)
	}
	return cars, nil
}

// CountBySellerStatus counts a seller's listings in one status.
func (r *CarRepository) CountBySellerStatus(ctx context.Context, sellerID string, status models.CarStatus) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From(carsTable).
		Where(sq.Eq{"seller_id": sellerID, "status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count seller cars: %w", err)
	}
	return total, nil
}

// Create inserts a new listing.
func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if car.CreatedAt.IsZero() {
		car.CreatedAt = now
	}
	car.UpdatedAt = now
	if car.Status == "" {
		car.Status = models.CarStatusActive
	}
	if car.Images == nil {
		car.Images = pq.StringArray{}
	}

	query, args, err := r.sb.Insert(carsTable).
		Columns("id", "seller_id", "brand", "model", "variant", "fuel_type", "transmission", "body_type", "ownership",
			"car_price", "manufacturing_year", "km_driven", "mileage", "seats", "color", "description", "images",
			"locality", "city", "state", "status", "created_at", "updated_at").
		Values(car.ID, car.SellerID, car.Brand, car.Model, car.Variant, car.FuelType, car.Transmission, car.BodyType, car.Ownership,
			car.CarPrice, car.ManufacturingYear, car.KmDriven, car.Mileage, car.Seats, car.Color, car.Description, car.Images,
			car.Address.Locality, car.Address.City, car.Address.State, car.Status, car.CreatedAt, car.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert car: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create car: %w", err)
	}
	return nil
}

// Update rewrites the editable attributes of a listing.
func (r *CarRepository) Update(ctx context.Context, car *models.Car) error {
	car.UpdatedAt = time.Now().UTC()
	if car.Images == nil {
		car.Images = pq.StringArray{}
	}
	query, args, err := r.sb.Update(carsTable).
		SetMap(map[string]interface{}{
			"brand":              car.Brand,
			"model":              car.Model,
			"variant":            car.Variant,
			"fuel_type":          car.FuelType,
			"transmission":       car.Transmission,
			"body_type":          car.BodyType,
			"ownership":          car.Ownership,
			"car_price":          car.CarPrice,
			"manufacturing_year": car.ManufacturingYear,
			"km_driven":          car.KmDriven,
			"mileage":            car.Mileage,
			"seats":              car.Seats,
			"color":              car.Color,
			"description":        car.Description,
			"images":             car.Images,
			"locality":           car.Address.Locality,
			"city":               car.Address.City,
			"state":              car.Address.State,
			"updated_at":         car.UpdatedAt,
		}).
		Where(sq.Eq{"id": car.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update car: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	return expectAffected(res)
}

// UpdateStatus moves a listing to another lifecycle status.
func (r *CarRepository) UpdateStatus(ctx context.Context, id string, status models.CarStatus) error {
	query, args, err := r.sb.Update(carsTable).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update car status: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
