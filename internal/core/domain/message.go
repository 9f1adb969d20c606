package domain

import "time"

// Message is one entry in the append-only direct-message log. There is no
// edit or delete lifecycle; the read flag flips when the receiver fetches
// the thread.
type Message struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	SenderID   string    `json:"sender" bson:"sender"`
	ReceiverID string    `json:"receiver" bson:"receiver"`
	Content    string    `json:"content" bson:"content"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Conversation summarises the exchange with one partner: the most recent
// message and how many of their messages are still unread.
type Conversation struct {
	PartnerID   string    `json:"partnerId"`
	LastMessage string    `json:"lastMessage"`
	LastAt      time.Time `json:"lastAt"`
	Unread      int       `json:"unread"`
}
