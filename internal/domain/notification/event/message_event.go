package event

import "github.com/parnaso/backend/internal/model"

// MESSAGE CREATED EVENT
type MessageCreatedEvent model.Message

func (*MessageCreatedEvent) Op() string {
	return "message_created"
}

// MESSAGES READ EVENT
type MessagesReadEvent struct {
	ReaderID string `json:"reader_id"`
}

func (*MessagesReadEvent) Op() string {
	return "messages_read"
}
