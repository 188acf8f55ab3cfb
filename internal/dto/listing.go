package dto

// ListingRequest carries the editable attributes of a seller's listing.
type ListingRequest struct {
	Brand             string   `json:"brand" validate:"required,max=60"`
	Model             string   `json:"model" validate:"required,max=60"`
	Variant           string   `json:"variant" validate:"max=60"`
	FuelType          string   `json:"fuelType" validate:"required"`
	Transmission      string   `json:"transmission" validate:"required"`
	BodyType          string   `json:"bodyType" validate:"required"`
	Ownership         string   `json:"ownership" validate:"required"`
	CarPrice          *int64   `json:"carPrice" validate:"omitempty,gte=0"`
	ManufacturingYear *int     `json:"manufacturingYear" validate:"omitempty,gte=1950,lte=2100"`
	KmDriven          *int     `json:"kmDriven" validate:"omitempty,gte=0"`
	Mileage           *float64 `json:"mileage" validate:"omitempty,gte=0"`
	Seats             *int     `json:"seats" validate:"omitempty,gte=1,lte=12"`
	Color             string   `json:"color" validate:"max=40"`
	Description       string   `json:"description" validate:"max=4000"`
	Images            []string `json:"images" validate:"max=20,dive,url"`
	Locality          *string  `json:"locality"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
}
