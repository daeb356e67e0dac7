package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/lshigami/interview-coach/internal/service"
)

type AnswerController struct {
	answerService service.AnswerService
}

func NewAnswerController(answerService service.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// ListAnswers godoc
// @Summary List the caller's answers
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AnswerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/answers [get]
func (ctrl *AnswerController) ListAnswers(c *gin.Context) {
	items, err := ctrl.answerService.ListAnswers(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateAnswer godoc
// @Summary Create a answer
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param answer body dto.AnswerRequest true "Answer data"
// @Success 201 {object} dto.AnswerResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/answers [post]
func (ctrl *AnswerController) CreateAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.answerService.CreateAnswer(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetAnswer godoc
// @Summary Get a answer
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/answers/{id} [get]
func (ctrl *AnswerController) GetAnswer(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.answerService.GetAnswer(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAnswer godoc
// @Summary Replace a answer
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param answer body dto.AnswerRequest true "Answer data"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/answers/{id} [put]
func (ctrl *AnswerController) UpdateAnswer(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.answerService.UpdateAnswer(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PatchAnswer godoc
// @Summary Partially update a answer
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param answer body dto.AnswerPatchRequest true "Fields to change"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/answers/{id} [patch]
func (ctrl *AnswerController) PatchAnswer(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnswerPatchRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.answerService.PatchAnswer(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteAnswer godoc
// @Summary Delete a answer
// @Tags Answers
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/answers/{id} [delete]
func (ctrl *AnswerController) DeleteAnswer(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.answerService.DeleteAnswer(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
