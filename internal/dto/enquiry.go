package dto

// CreateEnquiryRequest is the buyer contact form on the car detail page.
type CreateEnquiryRequest struct {
	CarID   string  `json:"carId" validate:"required"`
	Name    string  `json:"name" validate:"required,max=120"`
	Phone   string  `json:"phone" validate:"required,min=7,max=20"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Message string  `json:"message" validate:"max=1000"`
}

// SaveListingRequest bookmarks a car for the caller.
type SaveListingRequest struct {
	CarID string `json:"carId" validate:"required"`
}
