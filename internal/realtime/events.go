// Package realtime implements the live message channel: the connection
// registry (one websocket per user), the delivery dispatcher that fans
// freshly stored messages out to connected receivers, and the websocket
// endpoint itself.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/companycore/management-system/internal/core/domain"
)

// Outbound event names. The dashboard listens for exactly these two.
const (
	EventReceiveMessage = "receive_message"
	EventNotification   = "notification"
)

// eventRegister is the inbound late-binding event: a client that connected
// before authenticating announces its user id.
const eventRegister = "register"

// Envelope is the wire frame for both directions: a name plus a payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Notification is the payload of the notification event, consumed by the
// global unread-alert element rather than an open thread view.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}

// newMessageNotification derives the alert payload from a stored message.
// The sender's display name comes from the identity claim on the sending
// request, not from a user lookup.
func newMessageNotification(msg *domain.Message, senderName string) Notification {
	if senderName == "" {
		senderName = "someone"
	}
	return Notification{
		ID:        msg.ID,
		Type:      "new_message",
		Message:   fmt.Sprintf("New message from %s", senderName),
		SenderID:  msg.SenderID,
		CreatedAt: msg.CreatedAt,
	}
}
