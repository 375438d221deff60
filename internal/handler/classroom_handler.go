package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumusta-app/kumusta-api/internal/service"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/response"
)

// ClassroomHandler exposes classroom lifecycle and membership endpoints.
type ClassroomHandler struct {
	service *service.ClassroomService
}

// NewClassroomHandler creates a new handler.
func NewClassroomHandler(svc *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// ListMine godoc
// @Summary List my classrooms
// @Description Classrooms the caller belongs to, in joined order, with role
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, h.service.ListMine(claims.Username))
}

// Create godoc
// @Summary Create a classroom
// @Description Create a classroom with a generated join code; the caller becomes Class Rep
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Classroom name"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid classroom payload"))
		return
	}

	classroom, err := h.service.Create(claims.Username, payload.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, classroom)
}

// Get godoc
// @Summary Classroom details
// @Description Classroom info with member list; members only
// @Tags Classrooms
// @Produce json
// @Param code path string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	classroom, err := h.service.Get(claims.Username, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classroom)
}

// Join godoc
// @Summary Join a classroom
// @Description Join the classroom behind a code; joining twice is a no-op
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Classroom code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/join [post]
func (h *ClassroomHandler) Join(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid join payload"))
		return
	}

	classroom, err := h.service.Join(claims.Username, payload.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classroom)
}

// Leave godoc
// @Summary Leave a classroom
// @Description Leave the classroom; the Class Rep cannot leave
// @Tags Classrooms
// @Produce json
// @Param code path string true "Classroom code"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code}/leave [post]
func (h *ClassroomHandler) Leave(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Leave(claims.Username, c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a classroom
// @Description Delete the classroom and all its logs; Class Rep only, password re-entry required
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param code path string true "Classroom code"
// @Param payload body map[string]string true "Account password"
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{code} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "password is required"))
		return
	}

	if err := h.service.Delete(claims.Username, c.Param("code"), payload.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
