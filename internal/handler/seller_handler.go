package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/models"
	"github.com/noah-isme/usedcar-api/pkg/response"
)

type sellerService interface {
	Profile(ctx context.Context, sellerID string) (*models.SellerProfile, error)
}

// SellerHandler serves public seller pages.
type SellerHandler struct {
	sellers sellerService
}

// NewSellerHandler constructs the handler.
func NewSellerHandler(sellers sellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

// Profile godoc
// @Summary Seller profile with active listings
// @Tags Sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sellers/{id} [get]
func (h *SellerHandler) Profile(c *gin.Context) {
	profile, err := h.sellers.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}
