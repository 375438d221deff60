package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// ActivityHandler exposes classroom emotion check-ins, help messages,
// announcements and analytics.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// SubmitEmotion godoc
// @Summary Submit a daily emotion check-in
// @Description Record today's emotion for the classroom; a same-day resubmit returns the original check-in
// @Tags Activity
// @Accept json
// @Produce json
// @Param code path string true "Classroom code"
// @Param payload body map[string]string true "Emotion payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/emotions [post]
func (h *ActivityHandler) SubmitEmotion(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Emotion models.Emotion `json:"emotion"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid emotion payload"))
		return
	}

	result, err := h.service.SubmitEmotion(claims.Username, c.Param("code"), payload.Emotion)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// TodaysFeelings godoc
// @Summary Today's classroom feelings
// @Description Today's check-ins for every member, sorted by username
// @Tags Activity
// @Produce json
// @Param code path string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/feelings [get]
func (h *ActivityHandler) TodaysFeelings(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rows, err := h.service.TodaysFeelings(claims.Username, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rows)
}

// PostHelp godoc
// @Summary Post an anonymous help message
// @Description Post a help message visible to the classroom without the sender's name
// @Tags Activity
// @Accept json
// @Produce json
// @Param code path string true "Classroom code"
// @Param payload body map[string]string true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/help [post]
func (h *ActivityHandler) PostHelp(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	message, err := h.service.PostHelp(claims.Username, c.Param("code"), payload.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message)
}

// ListHelp godoc
// @Summary List help messages
// @Description Help messages newest-first; reading marks them seen for the caller
// @Tags Activity
// @Produce json
// @Param code path string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/help [get]
func (h *ActivityHandler) ListHelp(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	messages, err := h.service.ListHelp(claims.Username, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, messages)
}

// PostAnnouncement godoc
// @Summary Post an announcement
// @Description Broadcast to the classroom; Class Rep only
// @Tags Activity
// @Accept json
// @Produce json
// @Param code path string true "Classroom code"
// @Param payload body map[string]string true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/announcements [post]
func (h *ActivityHandler) PostAnnouncement(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}

	announcement, err := h.service.PostAnnouncement(claims.Username, c.Param("code"), payload.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, announcement)
}

// ListAnnouncements godoc
// @Summary List announcements
// @Description Classroom announcements newest-first; members only
// @Tags Activity
// @Produce json
// @Param code path string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/announcements [get]
func (h *ActivityHandler) ListAnnouncements(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	announcements, err := h.service.Announcements(claims.Username, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, announcements)
}

// Analytics godoc
// @Summary Weekly emotion analytics
// @Description Trailing-7-day emotion counts and guidance; Class Rep only
// @Tags Activity
// @Produce json
// @Param code path string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/analytics [get]
func (h *ActivityHandler) Analytics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	analytics, err := h.service.EmotionAnalytics(claims.Username, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, analytics)
}
