package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"smartshop/business/chat"
	"smartshop/pkg/logger"
)

type ChatService interface {
	Respond(ctx context.Context, message string, recentCategories []string) (chat.Reply, error)
}

type ChatHandler struct {
	chatService ChatService
	validate    *validator.Validate
	timeout     time.Duration
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validate:    validator.New(),
		timeout:     10 * time.Second,
	}
}

type ChatRequest struct {
	Message          string   `json:"message" validate:"required"`
	RecentCategories []string `json:"recentCategories"`
}

// POST /api/v1/chat
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "message is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reply, err := h.chatService.Respond(ctx, req.Message, req.RecentCategories)
	if err != nil {
		logger.Error("Chat reply failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reply))
}
