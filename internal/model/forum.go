package model

type ForumThread struct {
	ID         string `json:"id"`
	Author     User   `json:"author"`
	GuildID    string `json:"guild_id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category,omitempty"`
	NumReplies int64  `json:"num_replies"`
	CreatedAt  string `json:"created_at"`
}

type ForumReply struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Author    User   `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type CreateThreadRequest struct {
	GuildID  string `json:"guild_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CreateThreadResponse struct {
	Thread ForumThread `json:"thread"`
}

type GetThreadsRequest struct {
	GuildID  string `json:"guild_id"`
	Category string `json:"category"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetThreadsResponse struct {
	Threads []ForumThread `json:"threads"`
}

type GetThreadRequest struct {
	ID string `json:"id"`
}

type GetThreadResponse struct {
	Thread  ForumThread  `json:"thread"`
	Replies []ForumReply `json:"replies"`
}

type CreateReplyRequest struct {
	ThreadID string `json:"thread_id"`
	Content  string `json:"content"`
}

type CreateReplyResponse struct {
	Reply ForumReply `json:"reply"`
}

type DeleteThreadRequest struct {
	ID string `json:"id"`
}

type DeleteThreadResponse struct{}

type DeleteReplyRequest struct {
	ID string `json:"id"`
}

type DeleteReplyResponse struct{}

type SearchThreadsRequest struct {
	Q       string `json:"q"`
	GuildID string `json:"guild_id"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type SearchThreadsResponse struct {
	Threads []ForumThread `json:"threads"`
}
