package model

type UserSetting struct {
	DailyGoalWords int    `json:"daily_goal_words"`
	TimerMinutes   int    `json:"timer_minutes"`
	BreakMinutes   int    `json:"break_minutes"`
	Theme          string `json:"theme"`
}

type GetMySettingsRequest struct{}

type GetMySettingsResponse UserSetting

type UpdateMySettingsRequest UserSetting

type UpdateMySettingsResponse struct{}
