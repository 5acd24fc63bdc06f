package repository

import (
	"context"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GuildFilter struct {
	Q      string
	Offset int
	Limit  int
}

type GuildMemberTotal struct {
	UserID     string
	Name       string
	Role       entity.GuildRole
	TotalWords int64
}

type GuildRepository interface {
	Create(ctx context.Context, guild *entity.Guild) error
	GetByID(ctx context.Context, id string) (*entity.Guild, error)
	GetByName(ctx context.Context, name string) (*entity.Guild, error)
	GetList(ctx context.Context, filter GuildFilter) ([]entity.Guild, error)
	UpdateByID(ctx context.Context, id string, data *entity.Guild) error
	UpdateStatsResetDate(ctx context.Context, id string, resetDate time.Time) error
	DeleteByID(ctx context.Context, id string) error

	CreateMember(ctx context.Context, member *entity.GuildMember) error
	GetMember(ctx context.Context, guildID, userID string) (*entity.GuildMember, error)
	GetMembers(ctx context.Context, guildID string) ([]entity.GuildMember, error)
	GetJoinedGuilds(ctx context.Context, userID string) ([]entity.GuildMember, error)
	UpdateMemberRole(ctx context.Context, guildID, userID string, role entity.GuildRole) error
	DeleteMember(ctx context.Context, guildID, userID string) error
	CountMembers(ctx context.Context, guildID string) (int64, error)
	MemberTotals(ctx context.Context, guildID string, since time.Time) ([]GuildMemberTotal, error)

	CreateChallenge(ctx context.Context, challenge *entity.GuildChallenge) error
	GetChallengeByID(ctx context.Context, id string) (*entity.GuildChallenge, error)
	GetChallenges(ctx context.Context, guildID string) ([]entity.GuildChallenge, error)
	DeleteChallengeByID(ctx context.Context, id string) error
}

type guildRepository struct{}

func NewGuildRepository() *guildRepository {
	return &guildRepository{}
}

func (r *guildRepository) Create(ctx context.Context, guild *entity.Guild) error {
	return xcontext.DB(ctx).Create(guild).Error
}

func (r *guildRepository) GetByID(ctx context.Context, id string) (*entity.Guild, error) {
	var result entity.Guild
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *guildRepository) GetByName(ctx context.Context, name string) (*entity.Guild, error) {
	var result entity.Guild
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *guildRepository) GetList(ctx context.Context, filter GuildFilter) ([]entity.Guild, error) {
	tx := xcontext.DB(ctx).Model(&entity.Guild{})

	if filter.Q != "" {
		tx = tx.Where("name LIKE ?", "%"+filter.Q+"%")
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Guild
	err := tx.Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *guildRepository) UpdateByID(ctx context.Context, id string, data *entity.Guild) error {
	return xcontext.DB(ctx).
		Model(&entity.Guild{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *guildRepository) UpdateStatsResetDate(ctx context.Context, id string, resetDate time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Guild{}).
		Where("id=?", id).
		Update("stats_reset_date", resetDate)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *guildRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Guild{}, "id=?", id).Error
}

func (r *guildRepository) CreateMember(ctx context.Context, member *entity.GuildMember) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *guildRepository) GetMember(ctx context.Context, guildID, userID string) (*entity.GuildMember, error) {
	var result entity.GuildMember
	err := xcontext.DB(ctx).
		Where("guild_id=? AND user_id=?", guildID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *guildRepository) GetMembers(ctx context.Context, guildID string) ([]entity.GuildMember, error) {
	var result []entity.GuildMember
	err := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *guildRepository) GetJoinedGuilds(ctx context.Context, userID string) ([]entity.GuildMember, error) {
	var result []entity.GuildMember
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *guildRepository) UpdateMemberRole(
	ctx context.Context, guildID, userID string, role entity.GuildRole,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.GuildMember{}).
		Where("guild_id=? AND user_id=?", guildID, userID).
		Update("role", role)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *guildRepository) DeleteMember(ctx context.Context, guildID, userID string) error {
	return xcontext.DB(ctx).
		Where("guild_id=? AND user_id=?", guildID, userID).
		Delete(&entity.GuildMember{}).Error
}

func (r *guildRepository) CountMembers(ctx context.Context, guildID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.GuildMember{}).
		Where("guild_id=?", guildID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// MemberTotals sums word counts per member since the given time. Members
// without sessions still appear with a zero total.
func (r *guildRepository) MemberTotals(
	ctx context.Context, guildID string, since time.Time,
) ([]GuildMemberTotal, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.GuildMember{}).
		Select(
			"guild_members.user_id",
			"users.name",
			"guild_members.role",
			"COALESCE(SUM(writing_sessions.word_count), 0) AS total_words",
		).
		Joins("JOIN users ON users.id=guild_members.user_id").
		Where("guild_members.guild_id=?", guildID).
		Group("guild_members.user_id, users.name, guild_members.role").
		Order("total_words DESC")

	if since.IsZero() {
		tx = tx.Joins(
			"LEFT JOIN writing_sessions ON writing_sessions.user_id=guild_members.user_id " +
				"AND writing_sessions.deleted_at IS NULL")
	} else {
		tx = tx.Joins(
			"LEFT JOIN writing_sessions ON writing_sessions.user_id=guild_members.user_id "+
				"AND writing_sessions.deleted_at IS NULL AND writing_sessions.started_at >= ?", since)
	}

	var result []GuildMemberTotal
	if err := tx.Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *guildRepository) CreateChallenge(ctx context.Context, challenge *entity.GuildChallenge) error {
	return xcontext.DB(ctx).Create(challenge).Error
}

func (r *guildRepository) GetChallengeByID(ctx context.Context, id string) (*entity.GuildChallenge, error) {
	var result entity.GuildChallenge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *guildRepository) GetChallenges(ctx context.Context, guildID string) ([]entity.GuildChallenge, error) {
	var result []entity.GuildChallenge
	err := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *guildRepository) DeleteChallengeByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.GuildChallenge{}, "id=?", id).Error
}
