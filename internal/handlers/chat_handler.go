package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/services"
)

// ChatHandler handles advisor chat requests.
type ChatHandler struct {
	chatService services.ChatServicer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService services.ChatServicer) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the advisor chat request payload.
type ChatRequest struct {
	Messages []services.ChatMessage `json:"messages" binding:"required,min=1,max=50,dive"`
}

// ChatResponse documents the advisor chat response payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat relays a conversation to the language model and returns the reply.
// @Summary     Advisor chat
// @Description Send a conversation to the AI financial advisor and get a reply
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Conversation messages, oldest first"
// @Success     200 {object} ChatResponse "Advisor reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Advisor service unavailable"
// @Router      /advisor/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reply, err := h.chatService.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
