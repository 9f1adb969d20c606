package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/api/metrics"
	"github.com/companycore/management-system/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Conversations returns the caller's per-partner summary list, most recent
// conversation first, with full unread counts.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Success      200  {array}  domain.Conversation
// @Router       /api/messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	conversations, err := h.messageService.Conversations(c.Request().Context(), actor.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversations)
}

// Thread returns the chronological history with one partner. Fetching the
// thread marks the partner's unread messages as read.
//
// @Summary      Get message thread
// @Tags         messages
// @Produce      json
// @Param        userId  path     string  true  "Partner user id"
// @Success      200     {array}  domain.Message
// @Router       /api/messages/{userId} [get]
func (h *MessageHandler) Thread(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	messages, err := h.messageService.Thread(c.Request().Context(), actor.SubjectID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// Send persists a message and pushes it towards the receiver's live
// connection. The 201 means durable, not delivered.
//
// @Summary      Send message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.messageService.Send(c.Request().Context(), actor, req.ReceiverID, req.Content)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, msg)
}
