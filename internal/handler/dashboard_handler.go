package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// DashboardHandler exposes the landing-page overview.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Overview godoc
// @Summary Dashboard overview
// @Description Account info plus pending request and unseen help counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.Overview(claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard)
}
