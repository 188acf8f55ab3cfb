package models

// SortOption selects the comparator applied to search results.
type SortOption string

const (
	SortYearNewToOld   SortOption = "yearNewToOld"
	SortYearOldToNew   SortOption = "yearOldToNew"
	SortPriceLowToHigh SortOption = "priceLowToHigh"
	SortPriceHighToLow SortOption = "priceHighToLow"
	SortPopularity     SortOption = "popularity"
)

// PriceRange is a closed rupee interval.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// YearRange is a closed interval of manufacturing years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CarFilter is the snapshot of every sidebar facet. Empty slices and nil
// ranges impose no constraint.
type CarFilter struct {
	Brand        []string    `json:"brand"`
	Fuel         []string    `json:"fuel"`
	Transmission []string    `json:"transmission"`
	BodyType     []string    `json:"bodyType"`
	Ownership    []string    `json:"ownership"`
	Location     []string    `json:"location"`
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	YearRange    *YearRange  `json:"yearRange,omitempty"`
}

// CarQuery is a full listing-grid request.
type CarQuery struct {
	Filter     CarFilter
	SearchTerm string
	Sort       SortOption
	Page       int
	PageSize   int
}

// FacetOption is one selectable value with the number of active listings carrying it.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetSummary feeds the filter sidebar and the browse carousels.
type FacetSummary struct {
	Brand        []FacetOption `json:"brand"`
	Fuel         []FacetOption `json:"fuel"`
	Transmission []FacetOption `json:"transmission"`
	BodyType     []FacetOption `json:"bodyType"`
	Ownership    []FacetOption `json:"ownership"`
	City         []FacetOption `json:"city"`
	State        []FacetOption `json:"state"`
	PriceRange   *PriceRange   `json:"priceRange,omitempty"`
	YearRange    *YearRange    `json:"yearRange,omitempty"`
	Total        int           `json:"total"`
}
