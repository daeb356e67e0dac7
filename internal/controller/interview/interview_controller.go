package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/lshigami/interview-coach/internal/service"
)

type InterviewController struct {
	interviewService service.InterviewService
}

func NewInterviewController(interviewService service.InterviewService) *InterviewController {
	return &InterviewController{interviewService: interviewService}
}

// GenerateQuestion godoc
// @Summary Generate an interview question
// @Description Asks the LLM for a question for the role (default "Software Developer") and stores it in the caller's latest session for that role.
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerateQuestionRequest false "Target role"
// @Success 201 {object} dto.GenerateQuestionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "LLM or database failure"
// @Router /interviews/generate-question [post]
func (ctrl *InterviewController) GenerateQuestion(c *gin.Context) {
	var req dto.GenerateQuestionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.interviewService.GenerateQuestion(c.Request.Context(), middleware.CurrentUserID(c), req.Role)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EvaluateAnswer godoc
// @Summary Evaluate a candidate answer
// @Description Gets LLM feedback, extracts the "N/10" rating and stores the answer.
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EvaluateAnswerRequest true "Question and answer"
// @Success 201 {object} dto.EvaluateAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "question or answer missing"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "LLM or database failure"
// @Router /interviews/evaluate-answer [post]
func (ctrl *InterviewController) EvaluateAnswer(c *gin.Context) {
	var req dto.EvaluateAnswerRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.interviewService.EvaluateAnswer(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SaveSession godoc
// @Summary Save a session
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SaveSessionRequest false "Role and score"
// @Success 201 {object} dto.SaveSessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/save-session [post]
func (ctrl *InterviewController) SaveSession(c *gin.Context) {
	var req dto.SaveSessionRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	resp, err := ctrl.interviewService.SaveSession(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SessionHistory godoc
// @Summary List the caller's sessions, newest first
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SessionHistoryItem
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/session-history [get]
func (ctrl *InterviewController) SessionHistory(c *gin.Context) {
	items, err := ctrl.interviewService.SessionHistory(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
