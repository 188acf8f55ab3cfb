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

type savedListingService interface {
	Save(ctx context.Context, userID string, req dto.SaveListingRequest) error
	Remove(ctx context.Context, userID, carID string) error
	List(ctx context.Context, userID string) ([]models.Car, error)
}

type enquiryService interface {
	Create(ctx context.Context, buyerID string, req dto.CreateEnquiryRequest) (*models.Enquiry, error)
	ListSent(ctx context.Context, buyerID string) ([]models.EnquiryDetail, error)
	ListReceived(ctx context.Context, sellerID string) ([]models.EnquiryDetail, error)
}

type packageService interface {
	ListBought(ctx context.Context, userID string) ([]models.ListingPackage, error)
}

// AccountHandler serves the signed-in user's saved cars, enquiries and packages.
type AccountHandler struct {
	saved     savedListingService
	enquiries enquiryService
	packages  packageService
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(saved savedListingService, enquiries enquiryService, packages packageService) *AccountHandler {
	return &AccountHandler{saved: saved, enquiries: enquiries, packages: packages}
}

// ListSaved godoc
// @Summary Saved listings
// @Tags Account
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Success 200 {object} response.Envelope
// @Router /me/saved [get]
func (h *AccountHandler) ListSaved(c *gin.Context) {
	cars, err := h.saved.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cars, nil)
}

// Save godoc
// @Summary Save a listing
// @Tags Account
// @Accept json
// @Param X-User-ID header string true "Caller"
// @Param payload body dto.SaveListingRequest true "Listing"
// @Success 204
// @Router /me/saved [post]
func (h *AccountHandler) Save(c *gin.Context) {
	var req dto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	if err := h.saved.Save(c.Request.Context(), middleware.UserID(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unsave godoc
// @Summary Remove a saved listing
// @Tags Account
// @Param X-User-ID header string true "Caller"
// @Param carId path string true "Car ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /me/saved/{carId} [delete]
func (h *AccountHandler) Unsave(c *gin.Context) {
	if err := h.saved.Remove(c.Request.Context(), middleware.UserID(c), c.Param("carId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SendEnquiry godoc
// @Summary Contact a seller about a listing
// @Tags Account
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Param payload body dto.CreateEnquiryRequest true "Enquiry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /me/enquiries [post]
func (h *AccountHandler) SendEnquiry(c *gin.Context) {
	var req dto.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// SentEnquiries godoc
// @Summary Enquiries sent by the caller
// @Tags Account
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Success 200 {object} response.Envelope
// @Router /me/enquiries [get]
func (h *AccountHandler) SentEnquiries(c *gin.Context) {
	items, err := h.enquiries.ListSent(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// ReceivedEnquiries godoc
// @Summary Enquiries on the caller's listings
// @Tags Account
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Success 200 {object} response.Envelope
// @Router /me/enquiries/received [get]
func (h *AccountHandler) ReceivedEnquiries(c *gin.Context) {
	items, err := h.enquiries.ListReceived(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Packages godoc
// @Summary Bought listing packages
// @Tags Account
// @Produce json
// @Param X-User-ID header string true "Caller"
// @Success 200 {object} response.Envelope
// @Router /me/packages [get]
func (h *AccountHandler) Packages(c *gin.Context) {
	items, err := h.packages.ListBought(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
