package repository

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Project, error)
	UpdateByID(ctx context.Context, id string, data *entity.Project) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type projectRepository struct{}

func NewProjectRepository() *projectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return xcontext.DB(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var result entity.Project
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Project, error) {
	var result []entity.Project
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *projectRepository) UpdateByID(ctx context.Context, id string, data *entity.Project) error {
	return xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *projectRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Project{}, "id=?", id).Error
}

func (r *projectRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.Project{}, "user_id=?", userID).Error
}
