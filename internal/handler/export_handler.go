package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	"github.com/noah-isme/usedcar-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, query models.CarQuery, format string) (*dto.ExportResult, error)
}

// ExportHandler streams search results as CSV or PDF.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export matching listings
// @Tags Cars
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /cars/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	query, err := parseCarQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.Export(c.Request.Context(), query, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("X-Export-Rows", strconv.Itoa(result.Rows))
	if result.Truncated {
		c.Header("X-Export-Truncated", "true")
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}
