package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"eyecare-service/internal/ai"
	"eyecare-service/internal/utils"
)

type ChatHandler struct {
	AI *ai.Client
}

func NewChatHandler(aiClient *ai.Client) *ChatHandler {
	return &ChatHandler{AI: aiClient}
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	answer, err := h.AI.Chat(context.Background(), req.Question)
	if err != nil {
		utils.InternalErrorResponse(c, "Chatbot unavailable", err)
		return
	}
	utils.SuccessResponse(c, "Answer", gin.H{"answer": answer})
}
