package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&UserSetting{},
		&Project{},
		&WritingSession{},
		&Guild{},
		&GuildMember{},
		&GuildChallenge{},
		&Competition{},
		&CompetitionParticipant{},
		&Friendship{},
		&Message{},
		&ForumThread{},
		&ForumReply{},
		&File{},
	)
}
