package conversation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/session"
	"mindscape/be/internal/stream"
)

type ControllerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewControllerImpl(service Service, logger *slog.Logger) *ControllerImpl {
	return &ControllerImpl{service: service, logger: logger}
}

func (c *ControllerImpl) GetMessages(ctx *gin.Context) {
	messages, err := c.service.History(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		c.logger.Error("failed to load chat history", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

// SendMessage relays the assistant reply as an event stream. A reply cut
// short ends with an error comment instead of the end sentinel.
func (c *ControllerImpl) SendMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	w := ctx.Writer
	started := false
	start := func() {
		if !started {
			stream.SetHeaders(w.Header())
			started = true
		}
	}

	_, err := c.service.Send(ctx.Request.Context(), session.UserID(ctx), req.Content, func(fragment string) error {
		start()
		return stream.WriteChunk(w, stream.ContentChunk(fragment))
	})

	var startErr *stream.StreamStartError
	var interrupted *stream.TransportInterruptedError
	switch {
	case err == nil:
		start()
		_ = stream.WriteDone(w)
	case errors.Is(err, context.Canceled):
		c.logger.Info("client disconnected during chat reply")
	case started:
		reason := "stream failed"
		if errors.As(err, &interrupted) {
			reason = "stream interrupted"
		}
		c.logger.Warn("chat relay ended early", "error", err)
		_ = stream.WriteComment(w, "error "+reason)
	case errors.Is(err, ErrEmptyMessage):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrSendInFlight):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &startErr):
		c.logger.Error("chat stream did not start", "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
	case errors.As(err, &interrupted):
		start()
		_ = stream.WriteComment(w, "error stream interrupted")
	default:
		c.logger.Error("failed to send chat message", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.GET("/v1/conversation/messages", c.GetMessages)
	router.POST("/v1/conversation/messages", c.SendMessage)
}
