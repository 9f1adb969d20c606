package ports

import (
	"context"

	"github.com/companycore/management-system/internal/core/domain"
)

// MessageRepository persists the append-only message log.
type MessageRepository interface {
	// Insert stores a new message and returns it with its assigned id.
	Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// ListByUser returns every message the user sent or received, newest
	// first. Conversation assembly relies on this ordering.
	ListByUser(ctx context.Context, userID string) ([]*domain.Message, error)
	// Thread returns all messages between the two users, oldest first.
	Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error)
	// MarkRead flips read=true on every unread message from senderID to
	// receiverID and returns how many were updated.
	MarkRead(ctx context.Context, senderID, receiverID string) (int64, error)
}
