package mocks

import (
	"context"

	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// IssueRepository is a mock for issue.Repository.
type IssueRepository struct {
	mock.Mock
}

func (m *IssueRepository) Create(ctx context.Context, iss *issue.Issue) error {
	args := m.Called(ctx, iss)
	return args.Error(0)
}

func (m *IssueRepository) Get(ctx context.Context, project, id string) (*issue.Issue, error) {
	args := m.Called(ctx, project, id)
	if iss, ok := args.Get(0).(*issue.Issue); ok {
		return iss, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IssueRepository) List(ctx context.Context, project string, filter issue.Filter) ([]issue.Issue, error) {
	args := m.Called(ctx, project, filter)
	if list, ok := args.Get(0).([]issue.Issue); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Modify applies mutate to the issue returned by the expectation, if any.
func (m *IssueRepository) Modify(ctx context.Context, project, id string, mutate func(*issue.Issue)) (*issue.Issue, error) {
	args := m.Called(ctx, project, id, mutate)
	iss, ok := args.Get(0).(*issue.Issue)
	if !ok {
		return nil, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	mutate(iss)
	return iss, nil
}

func (m *IssueRepository) Delete(ctx context.Context, project, id string) error {
	args := m.Called(ctx, project, id)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) ListProjects(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
