package model

type WritingSession struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id,omitempty"`
	WordCount int    `json:"word_count"`
	Duration  int    `json:"duration"`
	StartedAt int64  `json:"started_at"` // unix milliseconds
	Content   string `json:"content,omitempty"`
	Notes     string `json:"notes,omitempty"`

	StressLevel     int `json:"stress_level"`
	DifficultyLevel int `json:"difficulty_level"`
	SessionRating   int `json:"session_rating"`

	UsedSkeleton     bool `json:"used_skeleton"`
	UsedDrafts       bool `json:"used_drafts"`
	UsedTimeStrategy bool `json:"used_time_strategy"`

	WasMultitasking         bool   `json:"was_multitasking"`
	MultitaskingDescription string `json:"multitasking_description,omitempty"`
	SelfRewarded            bool   `json:"self_rewarded"`
	RewardDescription       string `json:"reward_description,omitempty"`
}

type CreateSessionRequest struct {
	ProjectID string `json:"project_id"`
	WordCount int    `json:"word_count"`
	Duration  int    `json:"duration"`
	StartedAt int64  `json:"started_at"`
	Content   string `json:"content"`
	Notes     string `json:"notes"`

	StressLevel     int `json:"stress_level"`
	DifficultyLevel int `json:"difficulty_level"`
	SessionRating   int `json:"session_rating"`

	UsedSkeleton     bool `json:"used_skeleton"`
	UsedDrafts       bool `json:"used_drafts"`
	UsedTimeStrategy bool `json:"used_time_strategy"`

	WasMultitasking         bool   `json:"was_multitasking"`
	MultitaskingDescription string `json:"multitasking_description"`
	SelfRewarded            bool   `json:"self_rewarded"`
	RewardDescription       string `json:"reward_description"`
}

type CreateSessionResponse struct {
	Session WritingSession `json:"session"`
}

type GetMySessionsRequest struct {
	ProjectID string `json:"project_id"`
	Begin     int64  `json:"begin"`
	End       int64  `json:"end"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type GetMySessionsResponse struct {
	Sessions []WritingSession `json:"sessions"`
}

type ClearMyDataRequest struct{}

type ClearMyDataResponse struct{}
