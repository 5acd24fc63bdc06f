package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/enum"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProjectDomain interface {
	Create(context.Context, *model.CreateProjectRequest) (*model.CreateProjectResponse, error)
	GetMyList(context.Context, *model.GetMyProjectsRequest) (*model.GetMyProjectsResponse, error)
	Update(context.Context, *model.UpdateProjectRequest) (*model.UpdateProjectResponse, error)
	Delete(context.Context, *model.DeleteProjectRequest) (*model.DeleteProjectResponse, error)
}

type projectDomain struct {
	projectRepo repository.ProjectRepository
}

func NewProjectDomain(projectRepo repository.ProjectRepository) *projectDomain {
	return &projectDomain{projectRepo: projectRepo}
}

func (d *projectDomain) Create(
	ctx context.Context, req *model.CreateProjectRequest,
) (*model.CreateProjectResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.TargetWords < 0 {
		return nil, errorx.New(errorx.BadRequest, "Target words must not be negative")
	}

	project := &entity.Project{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Description: req.Description,
		TargetWords: req.TargetWords,
		Color:       req.Color,
		Status:      entity.ProjectStatusActive,
	}

	if err := d.projectRepo.Create(ctx, project); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProjectResponse{Project: model.ConvertProject(project)}, nil
}

func (d *projectDomain) GetMyList(
	ctx context.Context, req *model.GetMyProjectsRequest,
) (*model.GetMyProjectsResponse, error) {
	projects, err := d.projectRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get projects: %v", err)
		return nil, errorx.Unknown
	}

	clientProjects := []model.Project{}
	for i := range projects {
		clientProjects = append(clientProjects, model.ConvertProject(&projects[i]))
	}

	return &model.GetMyProjectsResponse{Projects: clientProjects}, nil
}

func (d *projectDomain) Update(
	ctx context.Context, req *model.UpdateProjectRequest,
) (*model.UpdateProjectResponse, error) {
	project, err := d.getOwnedProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	update := &entity.Project{
		Title:       req.Title,
		Description: req.Description,
		TargetWords: req.TargetWords,
		Color:       req.Color,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.ProjectStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		update.Status = status
	}

	if err := d.projectRepo.UpdateByID(ctx, project.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProjectResponse{}, nil
}

func (d *projectDomain) Delete(
	ctx context.Context, req *model.DeleteProjectRequest,
) (*model.DeleteProjectResponse, error) {
	project, err := d.getOwnedProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.projectRepo.DeleteByID(ctx, project.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteProjectResponse{}, nil
}

func (d *projectDomain) getOwnedProject(ctx context.Context, id string) (*entity.Project, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty project id")
	}

	project, err := d.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if project.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Not your project")
	}

	return project, nil
}
