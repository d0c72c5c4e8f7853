package chatbot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/stream"
)

type ControllerImpl struct {
	chatService Service
	logger      *slog.Logger
}

func NewControllerImpl(chatService Service, logger *slog.Logger) *ControllerImpl {
	return &ControllerImpl{chatService: chatService, logger: logger}
}

// ChatHandler answers with an event stream when the request sets "stream",
// and with a single JSON completion otherwise.
func (cc *ControllerImpl) ChatHandler(ctx *gin.Context) {
	var request ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(request.Messages) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrNoMessages.Error()})
		return
	}
	if request.Stream {
		cc.streamChat(ctx, request)
		return
	}

	completion, err := cc.chatService.CompleteChat(ctx.Request.Context(), request)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, completion)
	case errors.Is(err, context.Canceled):
		cc.logger.Info("client disconnected before completion")
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrNoMessages):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		cc.logger.Error("failed to complete chat", "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to complete chat"})
	}
}

func (cc *ControllerImpl) streamChat(ctx *gin.Context, request ChatRequest) {
	stream.SetHeaders(ctx.Writer.Header())
	err := cc.chatService.StreamChatResponse(ctx.Request.Context(), request, ctx.Writer)
	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled):
		cc.logger.Info("client disconnected during streaming")
	case ctx.Writer.Written():
		// Headers are gone; ending the body without the sentinel tells the
		// consumer the reply is incomplete.
		cc.logger.Warn("chat stream interrupted", "error", err)
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrNoMessages):
		ctx.Writer.Header().Del("Content-Type")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		cc.logger.Error("failed to stream response", "error", err)
		ctx.Writer.Header().Del("Content-Type")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to stream response"})
	}
}

func (cc *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/chat/completions", cc.ChatHandler)
}
