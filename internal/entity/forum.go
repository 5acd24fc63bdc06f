package entity

import "database/sql"

// ForumThread with a null GuildID belongs to the global forum.
type ForumThread struct {
	Base
	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	GuildID  sql.NullString `gorm:"index"`
	Title    string
	Content  string
	Category string
}

type ForumReply struct {
	Base
	ThreadID string      `gorm:"index"`
	Thread   ForumThread `gorm:"foreignKey:ThreadID"`
	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`
	Content  string
}
