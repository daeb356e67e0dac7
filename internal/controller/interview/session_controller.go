package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/lshigami/interview-coach/internal/service"
)

type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// ListSessions godoc
// @Summary List the caller's sessions
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/sessions [get]
func (ctrl *SessionController) ListSessions(c *gin.Context) {
	items, err := ctrl.sessionService.ListSessions(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateSession godoc
// @Summary Create a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body dto.SessionRequest true "Session data"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/sessions [post]
func (ctrl *SessionController) CreateSession(c *gin.Context) {
	var req dto.SessionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.sessionService.CreateSession(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSession godoc
// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/sessions/{id} [get]
func (ctrl *SessionController) GetSession(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.sessionService.GetSession(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSession godoc
// @Summary Replace a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param session body dto.SessionRequest true "Session data"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/sessions/{id} [put]
func (ctrl *SessionController) UpdateSession(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SessionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.sessionService.UpdateSession(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PatchSession godoc
// @Summary Partially update a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param session body dto.SessionPatchRequest true "Fields to change"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/sessions/{id} [patch]
func (ctrl *SessionController) PatchSession(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SessionPatchRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.sessionService.PatchSession(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSession godoc
// @Summary Delete a session with its questions and answers
// @Tags Sessions
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/sessions/{id} [delete]
func (ctrl *SessionController) DeleteSession(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.sessionService.DeleteSession(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
