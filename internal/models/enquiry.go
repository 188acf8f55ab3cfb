package models

import "time"

// EnquiryStatus tracks seller follow-up on an enquiry.
type EnquiryStatus string

const (
	EnquiryStatusOpen      EnquiryStatus = "open"
	EnquiryStatusResponded EnquiryStatus = "responded"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

// Enquiry is a buyer's contact request about a listing.
type Enquiry struct {
	ID        string        `db:"id" json:"id"`
	CarID     string        `db:"car_id" json:"carId"`
	BuyerID   string        `db:"buyer_id" json:"buyerId"`
	SellerID  string        `db:"seller_id" json:"sellerId"`
	Name      string        `db:"name" json:"name"`
	Phone     string        `db:"phone" json:"phone"`
	Email     *string       `db:"email" json:"email,omitempty"`
	Message   string        `db:"message" json:"message"`
	Status    EnquiryStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

// EnquiryDetail joins the enquiry with the listing title shown on account screens.
type EnquiryDetail struct {
	Enquiry
	CarBrand string `db:"car_brand" json:"carBrand"`
	CarModel string `db:"car_model" json:"carModel"`
}
