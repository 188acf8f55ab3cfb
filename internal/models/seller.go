package models

import "time"

// SellerType distinguishes individual owners from dealerships.
type SellerType string

const (
	SellerTypeIndividual SellerType = "individual"
	SellerTypeDealer     SellerType = "dealer"
)

// Seller is the public profile of a listing owner.
type Seller struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Type        SellerType `db:"seller_type" json:"type"`
	Phone       string     `db:"phone" json:"phone,omitempty"`
	Email       string     `db:"email" json:"email,omitempty"`
	City        *string    `db:"city" json:"city,omitempty"`
	State       *string    `db:"state" json:"state,omitempty"`
	AvatarURL   *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	Verified    bool       `db:"verified" json:"verified"`
	MemberSince time.Time  `db:"created_at" json:"memberSince"`
}

// SellerProfile is the seller page payload.
type SellerProfile struct {
	Seller   Seller `json:"seller"`
	Listings []Car  `json:"listings"`
	Sold     int    `json:"soldCount"`
}
