// Package carfilter narrows and orders the car catalog for the listing grid.
//
// Apply is a pure function: it never mutates its inputs, keeps no state between
// calls and is safe to call from concurrent requests.
package carfilter

import (
	"sort"
	"strings"

	"github.com/noah-isme/usedcar-api/internal/models"
)

// Apply returns the cars passing every active facet of f and the search term,
// ordered by option. The result is always a new slice.
func Apply(cars []models.Car, f models.CarFilter, searchTerm string, option models.SortOption) []models.Car {
	m := newMatcher(f, searchTerm)
	out := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if m.match(car) {
			out = append(out, car)
		}
	}
	Sort(out, option)
	return out
}

// Sort orders cars in place with a stable comparator. Unknown options,
// including popularity, leave the order untouched.
func Sort(cars []models.Car, option models.SortOption) {
	var less func(a, b models.Car) bool
	switch option {
	case models.SortYearNewToOld:
		less = func(a, b models.Car) bool { return a.Year() > b.Year() }
	case models.SortYearOldToNew:
		less = func(a, b models.Car) bool { return a.Year() < b.Year() }
	case models.SortPriceLowToHigh:
		less = func(a, b models.Car) bool { return a.Price() < b.Price() }
	case models.SortPriceHighToLow:
		less = func(a, b models.Car) bool { return a.Price() > b.Price() }
	default:
		return
	}
	sort.SliceStable(cars, func(i, j int) bool { return less(cars[i], cars[j]) })
}

type valueSet map[string]struct{}

func newValueSet(values []string) valueSet {
	if len(values) == 0 {
		return nil
	}
	set := make(valueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// allows is true for an inactive (nil) set.
func (s valueSet) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

func (s valueSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

type matcher struct {
	brand        valueSet
	fuel         valueSet
	transmission valueSet
	bodyType     valueSet
	ownership    valueSet
	location     valueSet
	price        *models.PriceRange
	year         *models.YearRange
	term         string
}

func newMatcher(f models.CarFilter, searchTerm string) matcher {
	return matcher{
		brand:        newValueSet(f.Brand),
		fuel:         newValueSet(f.Fuel),
		transmission: newValueSet(f.Transmission),
		bodyType:     newValueSet(f.BodyType),
		ownership:    newValueSet(f.Ownership),
		location:     newValueSet(f.Location),
		price:        f.PriceRange,
		year:         f.YearRange,
		term:         strings.ToLower(strings.TrimSpace(searchTerm)),
	}
}

func (m matcher) match(car models.Car) bool {
	if !m.brand.allows(car.Brand) ||
		!m.fuel.allows(car.FuelType) ||
		!m.transmission.allows(car.Transmission) ||
		!m.bodyType.allows(car.BodyType) ||
		!m.ownership.allows(car.Ownership) {
		return false
	}
	if m.location != nil && !m.matchLocation(car) {
		return false
	}
	if m.price != nil {
		if car.CarPrice == nil || *car.CarPrice < m.price.Min || *car.CarPrice > m.price.Max {
			return false
		}
	}
	if m.year != nil {
		if car.ManufacturingYear == nil || *car.ManufacturingYear < m.year.Min || *car.ManufacturingYear > m.year.Max {
			return false
		}
	}
	if m.term != "" && !strings.Contains(strings.ToLower(car.Title()), m.term) {
		return false
	}
	return true
}

// matchLocation accepts either the city or the state.
func (m matcher) matchLocation(car models.Car) bool {
	if car.Address.City != nil && m.location.has(*car.Address.City) {
		return true
	}
	return car.Address.State != nil && m.location.has(*car.Address.State)
}
