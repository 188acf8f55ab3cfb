package dto

import "github.com/noah-isme/usedcar-api/internal/models"

// BrowseDimension names a home page carousel.
type BrowseDimension string

const (
	BrowseByCity     BrowseDimension = "city"
	BrowseByBrand    BrowseDimension = "brand"
	BrowseByBodyType BrowseDimension = "bodyType"
)

// BrowseResponse lists the most common values of one dimension.
type BrowseResponse struct {
	Dimension BrowseDimension      `json:"dimension"`
	Options   []models.FacetOption `json:"options"`
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
	Rows        int
	Truncated   bool
}
