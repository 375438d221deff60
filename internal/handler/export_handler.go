package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// ExportHandler serves weekly summary downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// WeeklySummary godoc
// @Summary Export the weekly summary
// @Description Download the trailing-7-day summary as CSV or PDF
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /me/summary/export [get]
func (h *ExportHandler) WeeklySummary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", service.FormatCSV)
	file, err := h.service.WeeklySummary(claims.Username, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
