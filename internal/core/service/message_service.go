package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// MessageService is the message store and thread assembler. Delivery to a
// live connection is delegated to the delivery layer after the message is
// durable; a nil delivery degrades to store-only.
type MessageService struct {
	repo     ports.MessageRepository
	delivery ports.MessageDelivery
	log      zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, delivery ports.MessageDelivery, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, delivery: delivery, log: log}
}

func (s *MessageService) Send(ctx context.Context, actor auth.Identity, receiverID, content string) (*domain.Message, error) {
	if receiverID == "" || content == "" {
		return nil, domain.ErrValidation
	}

	msg, err := s.repo.Insert(ctx, &domain.Message{
		SenderID:   actor.SubjectID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// The message is durable at this point. Delivery is best-effort and
	// must not affect the response to the sender.
	if s.delivery != nil {
		s.delivery.Deliver(msg, actor.Name)
	}

	s.log.Debug().
		Str("message_id", msg.ID).
		Str("sender", msg.SenderID).
		Str("receiver", msg.ReceiverID).
		Msg("message stored")
	return msg, nil
}

// Conversations scans the user's messages newest-first and keeps the first
// message seen per partner as that conversation's preview. Because the scan
// is already descending by creation time, first occurrence per partner is
// the most recent message without a second pass. Unread counts every
// still-unread message received from that partner.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	messages, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*domain.Conversation)
	order := make([]*domain.Conversation, 0)
	for _, msg := range messages {
		partnerID := msg.SenderID
		if partnerID == userID {
			partnerID = msg.ReceiverID
		}

		conv, ok := index[partnerID]
		if !ok {
			conv = &domain.Conversation{
				PartnerID:   partnerID,
				LastMessage: msg.Content,
				LastAt:      msg.CreatedAt,
			}
			index[partnerID] = conv
			order = append(order, conv)
		}
		if !msg.Read && msg.ReceiverID == userID {
			conv.Unread++
		}
	}
	return order, nil
}

// Thread returns the full history with the partner oldest-first, then marks
// the partner's unread messages as read. The returned messages carry their
// pre-acknowledge read flags; the next fetch observes read=true.
func (s *MessageService) Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error) {
	messages, err := s.repo.Thread(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.MarkRead(ctx, partnerID, userID); err != nil {
		// The fetch already succeeded; a failed acknowledge only delays
		// badge clearing until the next fetch.
		s.log.Warn().Err(err).
			Str("user", userID).
			Str("partner", partnerID).
			Msg("failed to mark thread read")
	}
	return messages, nil
}
