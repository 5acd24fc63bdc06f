package event

import "github.com/parnaso/backend/internal/model"

type ThreadCreatedEvent struct {
	Thread model.ForumThread `json:"thread"`
}

func (*ThreadCreatedEvent) Op() string {
	return "thread_created"
}

type ReplyCreatedEvent struct {
	Reply model.ForumReply `json:"reply"`
}

func (*ReplyCreatedEvent) Op() string {
	return "reply_created"
}
