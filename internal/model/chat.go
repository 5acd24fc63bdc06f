package model

type Message struct {
	ID         int64  `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id,omitempty"`
	GuildID    string `json:"guild_id,omitempty"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	GuildID    string `json:"guild_id"`
	Content    string `json:"content"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type GetDirectMessagesRequest struct {
	UserID string `json:"user_id"`
	Before int64  `json:"before"`
	Limit  int    `json:"limit"`
}

type GetDirectMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type GetGuildMessagesRequest struct {
	GuildID string `json:"guild_id"`
	Before  int64  `json:"before"`
	Limit   int    `json:"limit"`
}

type GetGuildMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type MarkMessagesReadRequest struct {
	SenderID string `json:"sender_id"`
}

type MarkMessagesReadResponse struct{}

type CountUnreadMessagesRequest struct{}

type CountUnreadMessagesResponse struct {
	Unread int64 `json:"unread"`
}
