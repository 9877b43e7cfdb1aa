package handlers

import (
	"net/http"

	"glamsalon/models"
	ai "glamsalon/services/intelligence"
	"glamsalon/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the assistant over HTTP.
type ChatHandler struct {
	service ai.AIService
}

func NewChatHandler(service ai.AIService) *ChatHandler {
	return &ChatHandler{service: service}
}

// HandleChat processes one user message and returns the assistant's reply.
// A missing conversation ID starts a new conversation.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}
	if req.Text == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", "text is required")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	resp, err := h.service.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		logger.Error("failed to process chat message",
			zap.String("conversationID", req.ConversationID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}
