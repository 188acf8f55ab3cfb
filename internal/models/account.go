package models

import "time"

// SavedListing is a car bookmarked by a user.
type SavedListing struct {
	UserID  string    `db:"user_id" json:"userId"`
	CarID   string    `db:"car_id" json:"carId"`
	SavedAt time.Time `db:"saved_at" json:"savedAt"`
}

// ListingPackage is a purchased bundle of listing credits.
type ListingPackage struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Name         string    `db:"name" json:"name"`
	ListingLimit int       `db:"listing_limit" json:"listingLimit"`
	ListingsUsed int       `db:"listings_used" json:"listingsUsed"`
	AmountPaid   int64     `db:"amount_paid" json:"amountPaid"`
	PurchasedAt  time.Time `db:"purchased_at" json:"purchasedAt"`
	ExpiresAt    time.Time `db:"expires_at" json:"expiresAt"`
	Active       bool      `db:"-" json:"active"`
}

// SystemMetrics is a lightweight snapshot of request, cache and search activity.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	SearchesTotal            uint64    `json:"searchesTotal"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
