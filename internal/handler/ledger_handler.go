package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// LedgerHandler exposes mood, study session, timer, summary and help note
// endpoints.
type LedgerHandler struct {
	service *service.LedgerService
}

// NewLedgerHandler creates a new handler.
func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: svc}
}

// RecordMood godoc
// @Summary Record today's mood
// @Description Save the free-text mood for today, replacing any earlier entry
// @Tags Ledger
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Mood payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/moods [post]
func (h *LedgerHandler) RecordMood(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mood payload"))
		return
	}

	entry, err := h.service.RecordMood(claims.Username, payload.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, entry)
}

// RecordStudy godoc
// @Summary Record a study session
// @Description Append a manual study session for today
// @Tags Ledger
// @Accept json
// @Produce json
// @Param payload body service.RecordStudyRequest true "Study payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/study-sessions [post]
func (h *LedgerHandler) RecordStudy(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.RecordStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid study payload"))
		return
	}

	session, err := h.service.RecordStudy(claims.Username, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, session)
}

// RecordTimer godoc
// @Summary Submit a finished timer run
// @Description Convert timer seconds to a study session and reset presence
// @Tags Ledger
// @Accept json
// @Produce json
// @Param payload body service.RecordTimerRequest true "Timer payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/timer [post]
func (h *LedgerHandler) RecordTimer(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.RecordTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timer payload"))
		return
	}

	result, err := h.service.RecordTimer(claims.Username, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// WeeklyTotals godoc
// @Summary Weekly study totals
// @Description Per-day study minutes for the trailing 7 days, oldest first
// @Tags Ledger
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/weekly-totals [get]
func (h *LedgerHandler) WeeklyTotals(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, h.service.WeeklyTotals(claims.Username))
}

// WeeklySummary godoc
// @Summary Weekly summary
// @Description Trailing-7-day moods, study totals, advice and recommendation
// @Tags Ledger
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/summary [get]
func (h *LedgerHandler) WeeklySummary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summary, err := h.service.WeeklySummary(claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary)
}

// RecordHelpNote godoc
// @Summary Record a personal help note
// @Description Save an anonymous help note outside any classroom
// @Tags Ledger
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/help-notes [post]
func (h *LedgerHandler) RecordHelpNote(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}

	note, err := h.service.RecordHelpNote(claims.Username, payload.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, note)
}

// HelpNotes godoc
// @Summary List personal help notes
// @Tags Ledger
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/help-notes [get]
func (h *LedgerHandler) HelpNotes(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, h.service.HelpNotes(claims.Username))
}
