package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slackhook/application/dto"
	"github.com/alexmorbo/slackhook/domain/delivery"
	"github.com/alexmorbo/slackhook/domain/message"
	"github.com/alexmorbo/slackhook/infrastructure/webhook"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

type MessageRelayer interface {
	Execute(ctx context.Context, input dto.MessageInput) (*dto.DeliveryOutput, error)
	GetDelivery(ctx context.Context, id string) (*dto.DeliveryOutput, error)
}

type MessageHandler struct {
	relay  MessageRelayer
	logger *slog.Logger
}

func NewMessageHandler(relay MessageRelayer, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{relay: relay, logger: logger}
}

// SendMessage relays the request body to the webhook. A send that reached the
// webhook but failed still answers with the journaled delivery.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var input dto.MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		h.logger.Warn("Failed to parse message request",
			slog.String("error", err.Error()),
			slog.String("request_id", logger.GetRequestID(c.Request.Context())),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := h.relay.Execute(c.Request.Context(), input)
	if err == nil {
		c.JSON(http.StatusAccepted, out)
		return
	}

	switch {
	case errors.Is(err, dto.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, message.ErrPayloadEncoding):
		c.JSON(http.StatusBadRequest, deliveryError(out, err, 0))
	case out != nil:
		upstream := 0
		var statusErr *webhook.StatusError
		if errors.As(err, &statusErr) {
			upstream = statusErr.StatusCode
		}
		c.JSON(http.StatusBadGateway, deliveryError(out, err, upstream))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *MessageHandler) GetDelivery(c *gin.Context) {
	out, err := h.relay.GetDelivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, delivery.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
			return
		}
		h.logger.Error("Failed to load delivery",
			slog.String("delivery_id", c.Param("id")),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func deliveryError(out *dto.DeliveryOutput, err error, upstreamStatus int) gin.H {
	body := gin.H{"error": err.Error()}
	if out != nil {
		body["delivery"] = out
	}
	if upstreamStatus != 0 {
		body["upstream_status"] = upstreamStatus
	}
	return body
}
