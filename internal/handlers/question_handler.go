package handlers

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"eyecare-service/internal/models"
	"eyecare-service/internal/service"
	"eyecare-service/internal/utils"
)

// QuestionHandler exposes the technician-side question pool management.
type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.Service.ListQuestions(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list questions", err)
		return
	}
	utils.SuccessResponse(c, "Questions", questions)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.VisionQuestion
	if err := c.ShouldBindJSON(&question); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if question.Answer == "" {
		utils.BadRequestResponse(c, "question needs an expected answer")
		return
	}
	if err := h.Service.CreateQuestion(context.Background(), &question); err != nil {
		utils.InternalErrorResponse(c, "Failed to create question", err)
		return
	}
	utils.CreatedResponse(c, "Question created", question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := h.Service.UpdateQuestion(context.Background(), c.Param("id"), update); err != nil {
		utils.InternalErrorResponse(c, "Failed to update question", err)
		return
	}
	utils.SuccessResponse(c, "Question updated", nil)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.Service.DeleteQuestion(context.Background(), c.Param("id")); err != nil {
		utils.InternalErrorResponse(c, "Failed to delete question", err)
		return
	}
	utils.SuccessResponse(c, "Question deleted", nil)
}

// ImportWorkbook seeds the question pool from an uploaded .xlsx file.
func (h *QuestionHandler) ImportWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("workbook")
	if err != nil {
		utils.BadRequestResponse(c, "workbook file is required")
		return
	}
	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".xlsx" {
		utils.BadRequestResponse(c, "workbook must be an .xlsx file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read workbook", err)
		return
	}
	defer file.Close()

	count, err := h.Service.ImportWorkbook(context.Background(), file)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	utils.CreatedResponse(c, "Questions imported", gin.H{"imported": count})
}
