package migration

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.RefreshToken{},
		&entity.UserSetting{},
		&entity.Project{},
		&entity.WritingSession{},
		&entity.Guild{},
		&entity.GuildMember{},
		&entity.GuildChallenge{},
		&entity.Competition{},
		&entity.CompetitionParticipant{},
		&entity.Friendship{},
		&entity.Message{},
		&entity.ForumThread{},
		&entity.ForumReply{},
		&entity.File{},
	)
}
