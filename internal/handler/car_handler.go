package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/middleware"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/response"
)

type catalogService interface {
	Search(ctx context.Context, query models.CarQuery) ([]models.Car, *models.Pagination, bool, error)
	Get(ctx context.Context, id string) (*models.Car, error)
	Facets(ctx context.Context) (*models.FacetSummary, bool, error)
	Browse(ctx context.Context, dimension dto.BrowseDimension, limit int) (*dto.BrowseResponse, bool, error)
}

// CarHandler serves the listing grid, filter sidebar, detail page and browse carousels.
type CarHandler struct {
	catalog catalogService
}

// NewCarHandler constructs the handler.
func NewCarHandler(catalog catalogService) *CarHandler {
	return &CarHandler{catalog: catalog}
}

// Search godoc
// @Summary Search active car listings
// @Tags Cars
// @Produce json
// @Param brand query []string false "Brand (repeatable or comma separated)"
// @Param fuel query []string false "Fuel type"
// @Param transmission query []string false "Transmission"
// @Param bodyType query []string false "Body type"
// @Param ownership query []string false "Ownership"
// @Param location query []string false "City or state"
// @Param minPrice query int false "Minimum price (inclusive)"
// @Param maxPrice query int false "Maximum price (inclusive)"
// @Param minYear query int false "Minimum manufacturing year (inclusive)"
// @Param maxYear query int false "Maximum manufacturing year (inclusive)"
// @Param search query string false "Brand and model search"
// @Param sort query string false "yearNewToOld | yearOldToNew | priceLowToHigh | priceHighToLow | popularity"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cars [get]
func (h *CarHandler) Search(c *gin.Context) {
	query, err := parseCarQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	cars, pagination, hit, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, cars, pagination, middleware.ExtractMeta(c))
}

// Filters godoc
// @Summary Facet options and ranges for the filter sidebar
// @Tags Cars
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cars/filters [get]
func (h *CarHandler) Filters(c *gin.Context) {
	summary, hit, err := h.catalog.Facets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// Detail godoc
// @Summary Car detail
// @Tags Cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cars/{id} [get]
func (h *CarHandler) Detail(c *gin.Context) {
	car, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, car, nil)
}

// Browse godoc
// @Summary Most common cities, brands or body types
// @Tags Browse
// @Produce json
// @Param dimension path string true "city | brand | bodyType"
// @Param limit query int false "Maximum options"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /browse/{dimension} [get]
func (h *CarHandler) Browse(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = v
	}
	result, hit, err := h.catalog.Browse(c.Request.Context(), dto.BrowseDimension(c.Param("dimension")), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}
