package issue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/issue-tracker/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service handles issue business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates a new issue service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  newObjectID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newObjectID() string {
	return primitive.NewObjectID().Hex()
}

// CreateRequest describes an issue creation request.
type CreateRequest struct {
	Title      string
	Text       string
	CreatedBy  string
	AssignedTo string
	Status     string
	Priority   string
}

// Create stores a new open issue in project.
func (s *Service) Create(ctx context.Context, project string, req CreateRequest) (*Issue, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = DefaultStatus
	}

	now := s.now()
	iss := &Issue{
		ID:         s.newID(),
		Project:    project,
		Title:      req.Title,
		Text:       req.Text,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		Status:     status,
		Priority:   req.Priority,
		Open:       true,
		CreatedOn:  now,
		UpdatedOn:  now,
	}

	if err := s.repo.Create(ctx, iss); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	s.logger.Debug("issue created", "project", project, "id", iss.ID)
	return iss, nil
}

// List returns the project's issues matching filter, in creation order.
func (s *Service) List(ctx context.Context, project string, filter Filter) ([]Issue, error) {
	issues, err := s.repo.List(ctx, project, filter)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	if issues == nil {
		issues = []Issue{}
	}
	return issues, nil
}

// Update applies set to the issue and refreshes its updated_on timestamp.
// Nothing is written when the issue does not exist.
func (s *Service) Update(ctx context.Context, project, id string, set UpdateSet) (*Issue, error) {
	if set.Empty() {
		return nil, ErrNoUpdateFields
	}

	iss, err := s.repo.Modify(ctx, project, id, func(iss *Issue) {
		set.Apply(iss)
		iss.UpdatedOn = s.now()
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("updating issue: %w", err)
	}

	s.logger.Debug("issue updated", "project", project, "id", id, "fields", set.Fields())
	return iss, nil
}

// Delete removes the issue from project.
func (s *Service) Delete(ctx context.Context, project, id string) error {
	if err := s.repo.Delete(ctx, project, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIssueNotFound
		}
		return fmt.Errorf("deleting issue: %w", err)
	}
	s.logger.Debug("issue deleted", "project", project, "id", id)
	return nil
}
