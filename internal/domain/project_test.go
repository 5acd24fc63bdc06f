package domain

import (
	"testing"

	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_projectDomain_CreateAndUpdate(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewProjectDomain(repository.NewProjectRepository())

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := domain.Create(ctx, &model.CreateProjectRequest{
		Title:       "Novel",
		Description: "The second draft",
		TargetWords: 80000,
		Color:       "#7c3aed",
	})
	require.NoError(t, err)
	require.Equal(t, "#7c3aed", resp.Project.Color)
	require.Equal(t, "active", resp.Project.Status)

	_, err = domain.Update(ctx, &model.UpdateProjectRequest{
		ID:          resp.Project.ID,
		Title:       "Novel",
		TargetWords: 80000,
		Color:       "#16a34a",
		Status:      "archived",
	})
	require.NoError(t, err)

	list, err := domain.GetMyList(ctx, &model.GetMyProjectsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Projects, 1)
	require.Equal(t, "#16a34a", list.Projects[0].Color)
	require.Equal(t, "archived", list.Projects[0].Status)
}

func Test_projectDomain_Update_NotYours(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewProjectDomain(repository.NewProjectRepository())

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	other, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)
	resp, err := domain.Create(ownerCtx, &model.CreateProjectRequest{Title: "Mine"})
	require.NoError(t, err)

	otherCtx := xcontext.WithRequestUserID(ctx, other.ID)
	_, err = domain.Update(otherCtx, &model.UpdateProjectRequest{ID: resp.Project.ID, Title: "Taken"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
