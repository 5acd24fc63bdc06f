package repository

import (
	"context"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SessionFilter struct {
	UserID    string
	ProjectID string
	Begin     time.Time
	End       time.Time
	Offset    int
	Limit     int
}

type SessionStats struct {
	TotalWords    int64
	TotalMinutes  int64
	TotalSessions int64
}

type UserTotal struct {
	UserID     string
	TotalWords int64
}

type WritingSessionRepository interface {
	Create(ctx context.Context, session *entity.WritingSession) error
	GetByID(ctx context.Context, id string) (*entity.WritingSession, error)
	GetList(ctx context.Context, filter SessionFilter) ([]entity.WritingSession, error)
	GetInWindow(ctx context.Context, userID string, begin, end time.Time) ([]entity.WritingSession, error)
	Stats(ctx context.Context, filter SessionFilter) (*SessionStats, error)
	GlobalStats(ctx context.Context) (*SessionStats, error)
	TotalsByUsers(ctx context.Context, userIDs []string, since time.Time) ([]UserTotal, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type writingSessionRepository struct{}

func NewWritingSessionRepository() *writingSessionRepository {
	return &writingSessionRepository{}
}

func (r *writingSessionRepository) Create(ctx context.Context, session *entity.WritingSession) error {
	return xcontext.DB(ctx).Create(session).Error
}

func (r *writingSessionRepository) GetByID(ctx context.Context, id string) (*entity.WritingSession, error) {
	var result entity.WritingSession
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *writingSessionRepository) GetList(ctx context.Context, filter SessionFilter) ([]entity.WritingSession, error) {
	tx := r.applyFilter(ctx, filter).
		Order("started_at DESC").
		Offset(filter.Offset).Limit(filter.Limit)

	var result []entity.WritingSession
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetInWindow returns all sessions of a user whose started_at falls in the
// closed interval [begin, end].
func (r *writingSessionRepository) GetInWindow(
	ctx context.Context, userID string, begin, end time.Time,
) ([]entity.WritingSession, error) {
	var result []entity.WritingSession
	err := xcontext.DB(ctx).
		Where("user_id=? AND started_at >= ? AND started_at <= ?", userID, begin, end).
		Order("started_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *writingSessionRepository) Stats(ctx context.Context, filter SessionFilter) (*SessionStats, error) {
	var result SessionStats
	err := r.applyFilter(ctx, filter).
		Select(
			"COALESCE(SUM(word_count), 0) AS total_words",
			"COALESCE(SUM(duration), 0) AS total_minutes",
			"COUNT(*) AS total_sessions",
		).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *writingSessionRepository) GlobalStats(ctx context.Context) (*SessionStats, error) {
	return r.Stats(ctx, SessionFilter{})
}

// TotalsByUsers sums word counts per user over sessions started at or after
// since. Users without matching sessions are absent from the result.
func (r *writingSessionRepository) TotalsByUsers(
	ctx context.Context, userIDs []string, since time.Time,
) ([]UserTotal, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.WritingSession{}).
		Select("user_id", "COALESCE(SUM(word_count), 0) AS total_words").
		Where("user_id IN (?)", userIDs).
		Group("user_id")

	if !since.IsZero() {
		tx = tx.Where("started_at >= ?", since)
	}

	var result []UserTotal
	if err := tx.Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *writingSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.WritingSession{}, "user_id=?", userID).Error
}

func (r *writingSessionRepository) applyFilter(ctx context.Context, filter SessionFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.WritingSession{})

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.ProjectID != "" {
		tx = tx.Where("project_id=?", filter.ProjectID)
	}

	if !filter.Begin.IsZero() {
		tx = tx.Where("started_at >= ?", filter.Begin)
	}

	if !filter.End.IsZero() {
		tx = tx.Where("started_at <= ?", filter.End)
	}

	return tx
}
