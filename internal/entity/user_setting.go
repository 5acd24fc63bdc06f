package entity

import "time"

type UserSetting struct {
	UserID         string `gorm:"primaryKey"`
	User           User   `gorm:"foreignKey:UserID"`
	DailyGoalWords int
	TimerMinutes   int
	BreakMinutes   int
	Theme          string
	UpdatedAt      time.Time
}
