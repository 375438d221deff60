package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// SocialHandler exposes the friends endpoints.
type SocialHandler struct {
	service *service.SocialService
}

// NewSocialHandler creates a new handler.
func NewSocialHandler(svc *service.SocialService) *SocialHandler {
	return &SocialHandler{service: svc}
}

// Overview godoc
// @Summary Friends overview
// @Description Accepted friends with presence plus pending incoming requests
// @Tags Friends
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /friends [get]
func (h *SocialHandler) Overview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, h.service.Overview(claims.Username))
}

// SendRequest godoc
// @Summary Send a friend request
// @Description Queue a friend request; resends are reported, not errors
// @Tags Friends
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Target username"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /friends/requests [post]
func (h *SocialHandler) SendRequest(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	result, err := h.service.SendRequest(claims.Username, payload.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Accept godoc
// @Summary Accept a friend request
// @Description Convert a pending request into a friendship; missing requests are a no-op
// @Tags Friends
// @Produce json
// @Param username path string true "Sender username"
// @Success 200 {object} response.Envelope
// @Router /friends/requests/{username}/accept [post]
func (h *SocialHandler) Accept(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	accepted := h.service.Accept(claims.Username, c.Param("username"))
	response.JSON(c, http.StatusOK, gin.H{"accepted": accepted})
}

// Decline godoc
// @Summary Decline a friend request
// @Tags Friends
// @Produce json
// @Param username path string true "Sender username"
// @Success 200 {object} response.Envelope
// @Router /friends/requests/{username}/decline [post]
func (h *SocialHandler) Decline(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	declined := h.service.Decline(claims.Username, c.Param("username"))
	response.JSON(c, http.StatusOK, gin.H{"declined": declined})
}
