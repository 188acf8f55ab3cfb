package carfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/usedcar-api/internal/models"
)

func TestSummarize(t *testing.T) {
	cars := []models.Car{
		{Brand: "Tata", FuelType: "Petrol", BodyType: "SUV", CarPrice: price(500000), ManufacturingYear: year(2019), Address: models.Address{City: str("Pune"), State: str("Maharashtra")}},
		{Brand: "Honda", FuelType: "Petrol", BodyType: "Sedan", CarPrice: price(800000), ManufacturingYear: year(2021), Address: models.Address{City: str("Mumbai"), State: str("Maharashtra")}},
		{Brand: "Tata", FuelType: "Diesel", BodyType: "SUV", ManufacturingYear: year(2022)},
		{Brand: "Audi", CarPrice: price(3000000)},
	}

	summary := Summarize(cars)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, []models.FacetOption{{Value: "Tata", Count: 2}, {Value: "Audi", Count: 1}, {Value: "Honda", Count: 1}}, summary.Brand)
	assert.Equal(t, []models.FacetOption{{Value: "Petrol", Count: 2}, {Value: "Diesel", Count: 1}}, summary.Fuel)
	assert.Equal(t, []models.FacetOption{{Value: "Maharashtra", Count: 2}}, summary.State)
	assert.Equal(t, []models.FacetOption{{Value: "Mumbai", Count: 1}, {Value: "Pune", Count: 1}}, summary.City)
	assert.Empty(t, summary.Transmission)
	assert.Equal(t, &models.PriceRange{Min: 500000, Max: 3000000}, summary.PriceRange)
	assert.Equal(t, &models.YearRange{Min: 2019, Max: 2022}, summary.YearRange)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.Total)
	assert.Nil(t, summary.PriceRange)
	assert.Nil(t, summary.YearRange)
	assert.NotNil(t, summary.Brand)
}

func TestTop(t *testing.T) {
	opts := []models.FacetOption{{Value: "a", Count: 3}, {Value: "b", Count: 2}, {Value: "c", Count: 1}}

	assert.Len(t, Top(opts, 2), 2)
	assert.Len(t, Top(opts, 0), 3)
	assert.Len(t, Top(opts, 10), 3)
}
