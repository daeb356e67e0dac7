package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/lshigami/interview-coach/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary List the caller's questions
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuestionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/questions [get]
func (ctrl *QuestionController) ListQuestions(c *gin.Context) {
	items, err := ctrl.questionService.ListQuestions(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/questions [post]
func (ctrl *QuestionController) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.questionService.CreateQuestion(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/questions/{id} [get]
func (ctrl *QuestionController) GetQuestion(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.questionService.GetQuestion(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Question data"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/questions/{id} [put]
func (ctrl *QuestionController) UpdateQuestion(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.questionService.UpdateQuestion(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PatchQuestion godoc
// @Summary Partially update a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionPatchRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/questions/{id} [patch]
func (ctrl *QuestionController) PatchQuestion(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionPatchRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.questionService.PatchQuestion(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Delete a question and its answers
// @Tags Questions
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/questions/{id} [delete]
func (ctrl *QuestionController) DeleteQuestion(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questionService.DeleteQuestion(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
