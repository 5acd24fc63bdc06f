package model

import (
	"time"

	"github.com/parnaso/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}

	if includeSensitive {
		result.Email = user.Email
		result.Role = string(user.Role)
		result.Status = string(user.Status)
		result.IsBlocked = user.IsBlocked
	}

	return result
}

func ConvertWritingSession(session *entity.WritingSession) WritingSession {
	if session == nil {
		return WritingSession{}
	}

	return WritingSession{
		ID:                      session.ID,
		UserID:                  session.UserID,
		ProjectID:               session.ProjectID.String,
		WordCount:               session.WordCount,
		Duration:                session.Duration,
		StartedAt:               session.StartedAt.UnixMilli(),
		Content:                 session.Content,
		Notes:                   session.Notes,
		StressLevel:             session.StressLevel,
		DifficultyLevel:         session.DifficultyLevel,
		SessionRating:           session.SessionRating,
		UsedSkeleton:            session.UsedSkeleton,
		UsedDrafts:              session.UsedDrafts,
		UsedTimeStrategy:        session.UsedTimeStrategy,
		WasMultitasking:         session.WasMultitasking,
		MultitaskingDescription: session.MultitaskingDescription,
		SelfRewarded:            session.SelfRewarded,
		RewardDescription:       session.RewardDescription,
	}
}

func ConvertProject(project *entity.Project) Project {
	if project == nil {
		return Project{}
	}

	return Project{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		TargetWords: project.TargetWords,
		Color:       project.Color,
		Status:      string(project.Status),
		CreatedAt:   project.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertUserSetting(setting *entity.UserSetting) UserSetting {
	if setting == nil {
		return UserSetting{}
	}

	return UserSetting{
		DailyGoalWords: setting.DailyGoalWords,
		TimerMinutes:   setting.TimerMinutes,
		BreakMinutes:   setting.BreakMinutes,
		Theme:          setting.Theme,
	}
}

func ConvertGuild(guild *entity.Guild, numberOfMember int64) Guild {
	if guild == nil {
		return Guild{}
	}

	result := Guild{
		ID:             guild.ID,
		Name:           guild.Name,
		Description:    guild.Description,
		CreatedBy:      guild.CreatedBy,
		EmblemURL:      guild.EmblemURL,
		NumberOfMember: numberOfMember,
	}

	if guild.StatsResetDate.Valid {
		result.StatsResetDate = guild.StatsResetDate.Time.UnixMilli()
	}

	return result
}

func ConvertGuildChallenge(challenge *entity.GuildChallenge) GuildChallenge {
	if challenge == nil {
		return GuildChallenge{}
	}

	return GuildChallenge{
		ID:          challenge.ID,
		GuildID:     challenge.GuildID,
		Title:       challenge.Title,
		Description: challenge.Description,
		Type:        string(challenge.Type),
		Target:      challenge.Target,
		StartDate:   challenge.StartDate.UnixMilli(),
		EndDate:     challenge.EndDate.UnixMilli(),
		Data:        challenge.Data,
	}
}

func ConvertCompetition(competition *entity.Competition, participants int, joined bool) Competition {
	if competition == nil {
		return Competition{}
	}

	return Competition{
		ID:           competition.ID,
		CreatedBy:    competition.CreatedBy,
		Title:        competition.Title,
		Description:  competition.Description,
		Type:         string(competition.Type),
		Target:       competition.Target,
		StartDate:    competition.StartDate.UnixMilli(),
		EndDate:      competition.EndDate.UnixMilli(),
		Status:       string(competition.Status),
		Participants: participants,
		Joined:       joined,
	}
}

func ConvertMessage(message *entity.Message) Message {
	if message == nil {
		return Message{}
	}

	return Message{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID.String,
		GuildID:    message.GuildID.String,
		Content:    message.Content,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertForumThread(thread *entity.ForumThread, author *entity.User, numReplies int64) ForumThread {
	if thread == nil {
		return ForumThread{}
	}

	return ForumThread{
		ID:         thread.ID,
		Author:     ConvertUser(author, false),
		GuildID:    thread.GuildID.String,
		Title:      thread.Title,
		Content:    thread.Content,
		Category:   thread.Category,
		NumReplies: numReplies,
		CreatedAt:  thread.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertForumReply(reply *entity.ForumReply, author *entity.User) ForumReply {
	if reply == nil {
		return ForumReply{}
	}

	return ForumReply{
		ID:        reply.ID,
		ThreadID:  reply.ThreadID,
		Author:    ConvertUser(author, false),
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt.Format(DefaultTimeLayout),
	}
}
