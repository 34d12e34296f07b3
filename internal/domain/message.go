package domain

import (
	"context"
	"time"
)

// Message is a chat message scoped to one application. Either party may write
// while the application is in an active status; afterwards the channel is
// read-only.
type Message struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	SenderID      string     `json:"sender_id"`
	Content       string     `json:"content"`
	CreatedAt     time.Time  `json:"created_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
}

// MessageRepository is implemented for the live tables and the demo twin, so
// demo chat never leaks into live data.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	ListByApplication(ctx context.Context, applicationID string) ([]Message, error)
	// MarkRead stamps read_at on every unread message of the application not
	// sent by readerID.
	MarkRead(ctx context.Context, applicationID, readerID string) error
}

type MessageUsecase interface {
	Send(ctx context.Context, view *EffectiveView, userID, applicationID, content string) (*Message, error)
	List(ctx context.Context, view *EffectiveView, userID, applicationID string) ([]Message, error)
	MarkRead(ctx context.Context, view *EffectiveView, userID, applicationID string) error
}
