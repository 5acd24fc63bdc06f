package entity

import (
	"time"

	"github.com/parnaso/backend/pkg/enum"
)

type CompetitionType string

var (
	CompetitionWordCount  = enum.New(CompetitionType("word_count"))
	CompetitionDaysStreak = enum.New(CompetitionType("days_streak"))
)

type CompetitionStatus string

var (
	CompetitionStatusActive   = enum.New(CompetitionStatus("active"))
	CompetitionStatusFinished = enum.New(CompetitionStatus("finished"))
)

type Competition struct {
	Base
	CreatedBy   string
	Creator     User `gorm:"foreignKey:CreatedBy"`
	Title       string
	Description string
	Type        CompetitionType
	Target      int
	StartDate   time.Time
	EndDate     time.Time `gorm:"index"`
	Status      CompetitionStatus
}

type CompetitionParticipant struct {
	CompetitionID string      `gorm:"primaryKey"`
	Competition   Competition `gorm:"foreignKey:CompetitionID"`
	UserID        string      `gorm:"primaryKey"`
	User          User        `gorm:"foreignKey:UserID"`
	CreatedAt     time.Time
}
