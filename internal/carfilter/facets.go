package carfilter

import (
	"sort"

	"github.com/noah-isme/usedcar-api/internal/models"
)

// Summarize counts every facet value present in cars and records the observed
// price and year bounds. Empty values are not counted.
func Summarize(cars []models.Car) models.FacetSummary {
	counters := map[string]map[string]int{}
	count := func(facet, value string) {
		if value == "" {
			return
		}
		if counters[facet] == nil {
			counters[facet] = map[string]int{}
		}
		counters[facet][value]++
	}

	var price *models.PriceRange
	var year *models.YearRange
	for _, car := range cars {
		count("brand", car.Brand)
		count("fuel", car.FuelType)
		count("transmission", car.Transmission)
		count("bodyType", car.BodyType)
		count("ownership", car.Ownership)
		count("city", car.City())
		count("state", car.State())

		if car.CarPrice != nil {
			p := *car.CarPrice
			if price == nil {
				price = &models.PriceRange{Min: p, Max: p}
			} else {
				price.Min = min(price.Min, p)
				price.Max = max(price.Max, p)
			}
		}
		if car.ManufacturingYear != nil {
			y := *car.ManufacturingYear
			if year == nil {
				year = &models.YearRange{Min: y, Max: y}
			} else {
				year.Min = min(year.Min, y)
				year.Max = max(year.Max, y)
			}
		}
	}

	return models.FacetSummary{
		Brand:        options(counters["brand"]),
		Fuel:         options(counters["fuel"]),
		Transmission: options(counters["transmission"]),
		BodyType:     options(counters["bodyType"]),
		Ownership:    options(counters["ownership"]),
		City:         options(counters["city"]),
		State:        options(counters["state"]),
		PriceRange:   price,
		YearRange:    year,
		Total:        len(cars),
	}
}

// Top returns at most limit options. A non-positive limit returns all of them.
func Top(opts []models.FacetOption, limit int) []models.FacetOption {
	if limit <= 0 || limit >= len(opts) {
		return opts
	}
	return opts[:limit]
}

// options orders by count descending, then value ascending.
func options(counts map[string]int) []models.FacetOption {
	out := make([]models.FacetOption, 0, len(counts))
	for value, n := range counts {
		out = append(out, models.FacetOption{Value: value, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
