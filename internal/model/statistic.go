package model

type GetMyStatsRequest struct {
	Begin int64 `json:"begin"` // unix milliseconds, optional
	End   int64 `json:"end"`
}

type GetMyStatsResponse struct {
	TotalWords             int64 `json:"total_words"`
	TotalMinutes           int64 `json:"total_minutes"`
	TotalSessions          int64 `json:"total_sessions"`
	DaysStreak             int   `json:"days_streak"`
	AverageWordsPerSession int   `json:"average_words_per_session"`
}

type GetGlobalStatsRequest struct{}

type GetGlobalStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalWords    int64 `json:"total_words"`
	TotalMinutes  int64 `json:"total_minutes"`
	TotalSessions int64 `json:"total_sessions"`
}

type LeaderboardEntry struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	TotalWords int64  `json:"total_words"`
	Rank       uint64 `json:"rank"`
}

type GetGuildLeaderboardRequest struct {
	GuildID string `json:"guild_id"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetGuildLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  uint64             `json:"my_rank"`
}
