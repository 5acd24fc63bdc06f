package entity

import (
	"database/sql"
	"time"

	"github.com/parnaso/backend/pkg/enum"
)

type GuildRole string

var (
	GuildRoleAdmin  = enum.New(GuildRole("admin"))
	GuildRoleMember = enum.New(GuildRole("member"))
)

type Guild struct {
	Base
	Name           string `gorm:"unique"`
	Description    string
	CreatedBy      string
	EmblemURL      string
	StatsResetDate sql.NullTime
}

type GuildMember struct {
	GuildID   string `gorm:"primaryKey"`
	Guild     Guild  `gorm:"foreignKey:GuildID"`
	UserID    string `gorm:"primaryKey"`
	User      User   `gorm:"foreignKey:UserID"`
	Role      GuildRole
	CreatedAt time.Time
}

type GuildChallengeType string

var (
	GuildChallengeWordCount  = enum.New(GuildChallengeType("word_count"))
	GuildChallengeDaysStreak = enum.New(GuildChallengeType("days_streak"))
)

type GuildChallenge struct {
	Base
	GuildID     string `gorm:"index"`
	Guild       Guild  `gorm:"foreignKey:GuildID"`
	CreatedBy   string
	Title       string
	Description string
	Type        GuildChallengeType
	Target      int
	StartDate   time.Time
	EndDate     time.Time
	Data        Map `gorm:"type:text"`
}
