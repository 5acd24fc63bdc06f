package testutil

import (
	"context"
	"fmt"

	"github.com/parnaso/backend/pkg/storage"
)

// MockStorage pretends every upload succeeded. By default it answers with a
// deterministic fake URL, override UploadFunc to control the behavior.
// BulkUpload falls back to Upload per object unless BulkUploadFunc is set.
type MockStorage struct {
	UploadFunc     func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	BulkUploadFunc func(context.Context, []*storage.UploadObject) ([]*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return &storage.UploadResponse{
		Url:      fmt.Sprintf("https://storage.test/%s/%s/%s", obj.Bucket, obj.Prefix, obj.FileName),
		FileName: obj.FileName,
		Mime:     obj.Mime,
	}, nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objs []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if m.BulkUploadFunc != nil {
		return m.BulkUploadFunc(ctx, objs)
	}

	resps := make([]*storage.UploadResponse, 0, len(objs))
	for _, obj := range objs {
		resp, err := m.Upload(ctx, obj)
		if err != nil {
			return nil, err
		}

		resps = append(resps, resp)
	}

	return resps, nil
}
