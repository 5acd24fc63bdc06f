package model

type Guild struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	CreatedBy      string `json:"created_by"`
	EmblemURL      string `json:"emblem_url,omitempty"`
	StatsResetDate int64  `json:"stats_reset_date,omitempty"` // unix milliseconds
	NumberOfMember int64  `json:"number_of_member"`
}

type GuildMember struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	TotalWords int64  `json:"total_words"`
}

type GuildChallenge struct {
	ID          string         `json:"id"`
	GuildID     string         `json:"guild_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"`
	Target      int            `json:"target"`
	StartDate   int64          `json:"start_date"`
	EndDate     int64          `json:"end_date"`
	Data        map[string]any `json:"data,omitempty"`
}

type CreateGuildRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateGuildResponse struct {
	Guild Guild `json:"guild"`
}

type GetGuildRequest struct {
	ID string `json:"id"`
}

type GetGuildResponse struct {
	Guild Guild `json:"guild"`
}

type GetGuildsRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetGuildsResponse struct {
	Guilds []Guild `json:"guilds"`
}

type GetMyGuildsRequest struct{}

type GetMyGuildsResponse struct {
	Guilds []Guild `json:"guilds"`
}

type JoinGuildRequest struct {
	ID string `json:"id"`
}

type JoinGuildResponse struct{}

type LeaveGuildRequest struct {
	ID string `json:"id"`
}

type LeaveGuildResponse struct{}

type GetGuildMembersRequest struct {
	GuildID string `json:"guild_id"`
}

type GetGuildMembersResponse struct {
	Members []GuildMember `json:"members"`
}

type PromoteGuildMemberRequest struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
}

type PromoteGuildMemberResponse struct{}

type ResetGuildStatsRequest struct {
	GuildID string `json:"guild_id"`
}

type ResetGuildStatsResponse struct{}

type CreateGuildChallengeRequest struct {
	GuildID      string         `json:"guild_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	Target       int            `json:"target"`
	DurationDays int            `json:"duration_days"`
	Data         map[string]any `json:"data"`
}

type CreateGuildChallengeResponse struct {
	Challenge GuildChallenge `json:"challenge"`
}

type GetGuildChallengesRequest struct {
	GuildID string `json:"guild_id"`
}

type GetGuildChallengesResponse struct {
	Challenges []GuildChallenge `json:"challenges"`
}

type DeleteGuildChallengeRequest struct {
	ID string `json:"id"`
}

type DeleteGuildChallengeResponse struct{}

// UploadGuildEmblemRequest is empty because the emblem comes in as a multipart
// form, read from the raw http request.
type UploadGuildEmblemRequest struct{}

type UploadGuildEmblemResponse struct {
	URL string `json:"url"`
}
