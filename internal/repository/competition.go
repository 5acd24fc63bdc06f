package repository

import (
	"context"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CompetitionFilter struct {
	Status entity.CompetitionStatus
	Offset int
	Limit  int
}

type CompetitionRepository interface {
	Create(ctx context.Context, competition *entity.Competition) error
	GetByID(ctx context.Context, id string) (*entity.Competition, error)
	GetList(ctx context.Context, filter CompetitionFilter) ([]entity.Competition, error)
	DeleteByID(ctx context.Context, id string) error
	GetEndedActive(ctx context.Context, now time.Time) ([]entity.Competition, error)
	FinishEnded(ctx context.Context, now time.Time) (int64, error)

	Join(ctx context.Context, participant *entity.CompetitionParticipant) error
	GetParticipants(ctx context.Context, competitionID string) ([]entity.CompetitionParticipant, error)
	GetJoined(ctx context.Context, userID string) ([]entity.CompetitionParticipant, error)
	IsParticipant(ctx context.Context, competitionID, userID string) (bool, error)
}

type competitionRepository struct{}

func NewCompetitionRepository() *competitionRepository {
	return &competitionRepository{}
}

func (r *competitionRepository) Create(ctx context.Context, competition *entity.Competition) error {
	return xcontext.DB(ctx).Create(competition).Error
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (*entity.Competition, error) {
	var result entity.Competition
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *competitionRepository) GetList(ctx context.Context, filter CompetitionFilter) ([]entity.Competition, error) {
	tx := xcontext.DB(ctx).Model(&entity.Competition{})

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var result []entity.Competition
	err := tx.Order("end_date ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *competitionRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Competition{}, "id=?", id).Error
}

func (r *competitionRepository) GetEndedActive(
	ctx context.Context, now time.Time,
) ([]entity.Competition, error) {
	var result []entity.Competition
	err := xcontext.DB(ctx).
		Where("status=? AND end_date < ?", entity.CompetitionStatusActive, now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FinishEnded flips every active competition whose end date has passed.
func (r *competitionRepository) FinishEnded(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Competition{}).
		Where("status=? AND end_date < ?", entity.CompetitionStatusActive, now).
		Update("status", entity.CompetitionStatusFinished)

	return tx.RowsAffected, tx.Error
}

// Join is idempotent. Joining twice leaves a single participant row.
func (r *competitionRepository) Join(ctx context.Context, participant *entity.CompetitionParticipant) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant).Error
}

func (r *competitionRepository) GetParticipants(
	ctx context.Context, competitionID string,
) ([]entity.CompetitionParticipant, error) {
	var result []entity.CompetitionParticipant
	err := xcontext.DB(ctx).
		Where("competition_id=?", competitionID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *competitionRepository) GetJoined(ctx context.Context, userID string) ([]entity.CompetitionParticipant, error) {
	var result []entity.CompetitionParticipant
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *competitionRepository) IsParticipant(ctx context.Context, competitionID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.CompetitionParticipant{}).
		Where("competition_id=? AND user_id=?", competitionID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
