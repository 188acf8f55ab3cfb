package models

import (
	"time"

	"github.com/lib/pq"
)

// CarStatus describes where a listing is in its lifecycle.
type CarStatus string

const (
	CarStatusActive   CarStatus = "active"
	CarStatusSold     CarStatus = "sold"
	CarStatusInactive CarStatus = "inactive"
)

// Address locates a listed car. Both parts are optional.
type Address struct {
	Locality *string `db:"locality" json:"locality,omitempty"`
	City     *string `db:"city" json:"city,omitempty"`
	State    *string `db:"state" json:"state,omitempty"`
}

// Car is a single used-car listing.
//
// CarPrice and ManufacturingYear are optional; listings imported from older
// sources may lack them. Sorting treats a missing value as zero, while an
// active price or year range excludes the listing.
type Car struct {
	ID                string         `db:"id" json:"id"`
	SellerID          string         `db:"seller_id" json:"sellerId"`
	Brand             string         `db:"brand" json:"brand"`
	Model             string         `db:"model" json:"model"`
	Variant           string         `db:"variant" json:"variant,omitempty"`
	FuelType          string         `db:"fuel_type" json:"fuelType"`
	Transmission      string         `db:"transmission" json:"transmission"`
	BodyType          string         `db:"body_type" json:"bodyType"`
	Ownership         string         `db:"ownership" json:"ownership"`
	CarPrice          *int64         `db:"car_price" json:"carPrice,omitempty"`
	ManufacturingYear *int           `db:"manufacturing_year" json:"manufacturingYear,omitempty"`
	KmDriven          *int           `db:"km_driven" json:"kmDriven,omitempty"`
	Mileage           *float64       `db:"mileage" json:"mileage,omitempty"`
	Seats             *int           `db:"seats" json:"seats,omitempty"`
	Color             string         `db:"color" json:"color,omitempty"`
	Description       string         `db:"description" json:"description,omitempty"`
	Images            pq.StringArray `db:"images" json:"images"`
	Address           Address        `db:"address" json:"address"`
	Status            CarStatus      `db:"status" json:"status"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

// Title is the "{brand} {model}" label used by listing cards and search.
func (c Car) Title() string {
	return c.Brand + " " + c.Model
}

// Price returns the listed price, zero when unknown.
func (c Car) Price() int64 {
	if c.CarPrice == nil {
		return 0
	}
	return *c.CarPrice
}

// Year returns the manufacturing year, zero when unknown.
func (c Car) Year() int {
	if c.ManufacturingYear == nil {
		return 0
	}
	return *c.ManufacturingYear
}

// City returns the listing city or an empty string.
func (c Car) City() string {
	if c.Address.City == nil {
		return ""
	}
	return *c.Address.City
}

// State returns the listing state or an empty string.
func (c Car) State() string {
	if c.Address.State == nil {
		return ""
	}
	return *c.Address.State
}
