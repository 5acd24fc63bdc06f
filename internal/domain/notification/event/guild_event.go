package event

import "github.com/parnaso/backend/internal/model"

type GuildMemberJoinedEvent struct {
	GuildID string     `json:"guild_id"`
	User    model.User `json:"user"`
}

func (*GuildMemberJoinedEvent) Op() string {
	return "guild_member_joined"
}

type GuildMemberLeftEvent struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
}

func (*GuildMemberLeftEvent) Op() string {
	return "guild_member_left"
}

type GuildStatsResetEvent struct {
	GuildID   string `json:"guild_id"`
	ResetDate int64  `json:"reset_date"`
}

func (*GuildStatsResetEvent) Op() string {
	return "guild_stats_reset"
}

type GuildChallengeCreatedEvent struct {
	Challenge model.GuildChallenge `json:"challenge"`
}

func (*GuildChallengeCreatedEvent) Op() string {
	return "guild_challenge_created"
}
