package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestProjectService_ListSortsByName(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListProjects", ctx).Return([]project.Summary{
		{Name: "zeta", IssueCount: 1, OpenIssues: 1},
		{Name: "apitest", IssueCount: 3, OpenIssues: 2},
	}, nil)

	svc := project.NewService(repo, nil)
	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "apitest", summaries[0].Name)
	require.Equal(t, "zeta", summaries[1].Name)
	repo.AssertExpectations(t)
}

func TestProjectService_ListEmpty(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListProjects", ctx).Return(nil, nil)

	svc := project.NewService(repo, nil)
	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestProjectService_ListError(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListProjects", ctx).Return(nil, errors.New("boom"))

	svc := project.NewService(repo, nil)
	_, err := svc.List(ctx)
	require.ErrorIs(t, err, project.ErrStoreUnavailable)
}
