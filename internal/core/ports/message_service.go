package ports

import (
	"context"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// MessageDelivery pushes a freshly persisted message towards the receiver's
// live connection, if any. Implementations must be non-blocking and must
// swallow delivery failures: by the time Deliver is called the message is
// already durable, and durability is what the sender was promised.
type MessageDelivery interface {
	Deliver(msg *domain.Message, senderName string)
}

// MessageService is the message store plus thread assembly.
type MessageService interface {
	// Send validates, persists, and hands the message to the delivery
	// layer. Persistence happens-before any push attempt.
	Send(ctx context.Context, actor auth.Identity, receiverID, content string) (*domain.Message, error)
	// Conversations derives the per-partner summary list for the user:
	// one entry per distinct counterpart, most recent message first.
	Conversations(ctx context.Context, userID string) ([]*domain.Conversation, error)
	// Thread returns the chronological history with the partner and marks
	// the partner's unread messages as read (fetch-implies-acknowledge).
	Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error)
}
