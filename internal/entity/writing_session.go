package entity

import (
	"database/sql"
	"time"
)

type WritingSession struct {
	Base
	UserID    string `gorm:"index"`
	User      User   `gorm:"foreignKey:UserID"`
	ProjectID sql.NullString
	Project   Project `gorm:"foreignKey:ProjectID"`
	WordCount int
	Duration  int // minutes
	StartedAt time.Time `gorm:"index"`
	Content   string    `gorm:"type:text"`
	Notes     string

	// Reflection answers recorded on save. Ratings are 1-5, zero means the
	// question was skipped.
	StressLevel     int
	DifficultyLevel int
	SessionRating   int

	UsedSkeleton     bool
	UsedDrafts       bool
	UsedTimeStrategy bool

	WasMultitasking         bool
	MultitaskingDescription string
	SelfRewarded            bool
	RewardDescription       string
}
