package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"eyecare-service/internal/repository"
	"eyecare-service/internal/service"
	"eyecare-service/internal/utils"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

func (h *QuizHandler) Start(c *gin.Context) {
	started, err := h.Service.Start(context.Background(), currentUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughQuestions) {
			utils.ErrorResponse(c, 503, "Quiz is not available yet", err)
			return
		}
		utils.InternalErrorResponse(c, "Failed to start quiz", err)
		return
	}
	utils.CreatedResponse(c, "Quiz started", started)
}

func (h *QuizHandler) GetQuestion(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	view, err := h.Service.Question(context.Background(), c.Param("token"), currentUsername(c), index)
	if err != nil {
		h.attemptError(c, err)
		return
	}
	utils.SuccessResponse(c, "Question", view)
}

type answerRequest struct {
	Index   int    `json:"index"`
	Answer  string `json:"answer"`
	Advance bool   `json:"advance"`
}

func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.Service.Answer(context.Background(), c.Param("token"), currentUsername(c), req.Index, req.Answer, req.Advance)
	if err != nil {
		h.attemptError(c, err)
		return
	}
	utils.SuccessResponse(c, "Answer recorded", nil)
}

func (h *QuizHandler) Finish(c *gin.Context) {
	result, err := h.Service.Finish(context.Background(), c.Param("token"), currentUsername(c))
	if err != nil {
		h.attemptError(c, err)
		return
	}
	utils.SuccessResponse(c, "Quiz scored", result)
}

func (h *QuizHandler) History(c *gin.Context) {
	results, err := h.Service.History(context.Background(), currentUsername(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load quiz history", err)
		return
	}
	utils.SuccessResponse(c, "Quiz history", results)
}

func (h *QuizHandler) questionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, "question index must be a number")
		return 0, false
	}
	return index, true
}

func (h *QuizHandler) attemptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrAttemptNotFound):
		utils.NotFoundResponse(c, "Quiz attempt not found or expired")
	case errors.Is(err, service.ErrNotAttemptOwner):
		utils.ForbiddenResponse(c, "Quiz attempt belongs to another user")
	case errors.Is(err, service.ErrQuestionOutOfRange):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, "Quiz operation failed", err)
	}
}
