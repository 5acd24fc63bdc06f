package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/storage"
	"github.com/parnaso/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadImage(ctx context.Context) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileDomain(fileRepo repository.FileRepository, fileStorage storage.Storage) *fileDomain {
	return &fileDomain{fileRepo: fileRepo, storage: fileStorage}
}

func (d *fileDomain) UploadImage(ctx context.Context) (*model.UploadImageResponse, error) {
	uresps, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	files := []*entity.File{}
	for _, uresp := range uresps {
		files = append(files, &entity.File{
			Base:      entity.Base{ID: uuid.NewString()},
			Mime:      uresp.Mime,
			Name:      uresp.FileName,
			CreatedBy: xcontext.RequestUserID(ctx),
			Url:       uresp.Url,
		})
	}

	if err := d.fileRepo.BulkInsert(ctx, files); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save uploaded files: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{URL: uresps[0].Url}, nil
}
