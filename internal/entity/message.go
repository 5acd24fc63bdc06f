package entity

import (
	"database/sql"
	"time"
)

// Message holds both direct and guild chat. Exactly one of ReceiverID and
// GuildID is set. IDs are snowflakes so ordering by id is ordering by time.
type Message struct {
	ID         int64  `gorm:"primaryKey"`
	SenderID   string `gorm:"index"`
	Sender     User   `gorm:"foreignKey:SenderID"`
	ReceiverID sql.NullString `gorm:"index"`
	GuildID    sql.NullString `gorm:"index"`
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}
