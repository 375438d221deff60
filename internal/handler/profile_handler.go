package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// ProfileHandler exposes presence, study mode and picture endpoints.
type ProfileHandler struct {
	service *service.AuthService
}

// NewProfileHandler creates a new handler.
func NewProfileHandler(svc *service.AuthService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// SetStatus godoc
// @Summary Update presence status
// @Description Set the account presence to studying, resting or offline
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/status [put]
func (h *ProfileHandler) SetStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Status models.PresenceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}

	if err := h.service.SetStatus(claims.Username, payload.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"status": payload.Status})
}

// SetMode godoc
// @Summary Update study mode
// @Description Switch between Home and School study modes
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Mode payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/mode [put]
func (h *ProfileHandler) SetMode(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Mode models.StudyMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "mode is required"))
		return
	}

	if err := h.service.SetMode(claims.Username, payload.Mode); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"mode": payload.Mode})
}

// UpdatePicture godoc
// @Summary Replace profile picture
// @Description Upload a new profile picture for the account
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Profile picture (png, jpg, jpeg, gif)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/picture [put]
func (h *ProfileHandler) UpdatePicture(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "please choose an image file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read picture"))
		return
	}
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read picture"))
		return
	}

	user, err := h.service.UpdatePicture(claims.Username, data, filepath.Ext(fileHeader.Filename))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user)
}
