package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

// parseCarQuery maps listing-grid query parameters onto a CarQuery. Facet
// parameters may be repeated or comma separated.
func parseCarQuery(c *gin.Context) (models.CarQuery, error) {
	query := models.CarQuery{
		Filter: models.CarFilter{
			Brand:        multiValue(c, "brand"),
			Fuel:         multiValue(c, "fuel"),
			Transmission: multiValue(c, "transmission"),
			BodyType:     multiValue(c, "bodyType"),
			Ownership:    multiValue(c, "ownership"),
			Location:     multiValue(c, "location"),
		},
		SearchTerm: c.Query("search"),
		Sort:       models.SortOption(strings.TrimSpace(c.Query("sort"))),
	}

	minPrice, hasMinPrice, err := int64Param(c, "minPrice")
	if err != nil {
		return query, err
	}
	maxPrice, hasMaxPrice, err := int64Param(c, "maxPrice")
	if err != nil {
		return query, err
	}
	if hasMinPrice || hasMaxPrice {
		if !hasMaxPrice {
			maxPrice = math.MaxInt64
		}
		query.Filter.PriceRange = &models.PriceRange{Min: minPrice, Max: maxPrice}
	}

	minYear, hasMinYear, err := int64Param(c, "minYear")
	if err != nil {
		return query, err
	}
	maxYear, hasMaxYear, err := int64Param(c, "maxYear")
	if err != nil {
		return query, err
	}
	if hasMinYear || hasMaxYear {
		if !hasMaxYear {
			maxYear = math.MaxInt32
		}
		query.Filter.YearRange = &models.YearRange{Min: int(min(minYear, math.MaxInt32)), Max: int(min(maxYear, math.MaxInt32))}
	}

	page, _, err := int64Param(c, "page")
	if err != nil {
		return query, err
	}
	limit, _, err := int64Param(c, "limit")
	if err != nil {
		return query, err
	}
	query.Page = int(min(page, math.MaxInt32))
	query.PageSize = int(min(limit, math.MaxInt32))
	return query, nil
}

// multiValue collects repeated and comma separated values, trimmed and de-duplicated in order.
func multiValue(c *gin.Context, key string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

func int64Param(c *gin.Context, key string) (int64, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a non-negative integer", key))
	}
	return v, true, nil
}
