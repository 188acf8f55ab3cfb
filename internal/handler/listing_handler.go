package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/middleware"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/response"
)

type listingService interface {
	ListMine(ctx context.Context, sellerID string) ([]models.Car, error)
	Create(ctx context.Context, sellerID string, req dto.ListingRequest) (*models.Car, error)
	Update(ctx context.Context, sellerID, carID string, req dto.ListingRequest) (*models.Car, error)
	MarkSold(ctx context.Context, sellerID, carID string) (*models.Car, error)
	Delete(ctx context.Context, sellerID, carID string) error
}

// ListingHandler manages the caller's own listings.
type ListingHandler struct {
	listings listingService
}

// NewListingHandler constructs the handler.
func NewListingHandler(listings listingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List godoc
// @Summary Caller's listings in every status
// @Tags Listings
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Success 200 {object} response.Envelope
// @Router /me/listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	cars, err := h.listings.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cars, nil)
}

// Create godoc
// @Summary Publish a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Param payload body dto.ListingRequest true "Listing"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	req, ok := bindListing(c)
	if !ok {
		return
	}
	car, err := h.listings.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, car)
}

// Update godoc
// @Summary Edit a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Param id path string true "Car ID"
// @Param payload body dto.ListingRequest true "Listing"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /me/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	req, ok := bindListing(c)
	if !ok {
		return
	}
	car, err := h.listings.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, car, nil)
}

// MarkSold godoc
// @Summary Mark a listing as sold
// @Tags Listings
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Param id path string true "Car ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /me/listings/{id}/sold [post]
func (h *ListingHandler) MarkSold(c *gin.Context) {
	car, err := h.listings.MarkSold(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, car, nil)
}

// Delete godoc
// @Summary Withdraw a listing
// @Tags Listings
// @Param X-User-ID header string true "Caller"
// @Param id path string true "Car ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /me/listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.listings.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindListing(c *gin.Context) (dto.ListingRequest, bool) {
	var req dto.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return req, false
	}
	return req, true
}
