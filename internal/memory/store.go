// Package memory keeps issues in process memory, partitioned by project.
package memory

import (
	"context"
	"sync"

	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/repository"
)

var (
	_ issue.Repository   = (*Store)(nil)
	_ project.Repository = (*Store)(nil)
)

// Store is a process-lifetime issue store. The zero value is not usable;
// call New.
type Store struct {
	mu       sync.RWMutex
	projects map[string][]issue.Issue
	ids      map[string]string // issue id -> project
}

// New creates an empty store.
func New() *Store {
	return &Store{
		projects: make(map[string][]issue.Issue),
		ids:      make(map[string]string),
	}
}

// Close drops every project and issue.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make(map[string][]issue.Issue)
	s.ids = make(map[string]string)
	return nil
}

// Create appends iss to its project, creating the project when unseen.
func (s *Store) Create(_ context.Context, iss *issue.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.ids[iss.ID]; taken {
		return repository.ErrDuplicateID
	}
	s.projects[iss.Project] = append(s.projects[iss.Project], *iss)
	s.ids[iss.ID] = iss.Project
	return nil
}

// Get returns a copy of the issue.
func (s *Store) Get(_ context.Context, proj, id string) (*issue.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(proj, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	iss := s.projects[proj][i]
	return &iss, nil
}

// List returns copies of the project's issues that match filter. Listing an
// unseen project registers it with no issues.
func (s *Store) List(_ context.Context, proj string, filter issue.Filter) ([]issue.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, ok := s.projects[proj]
	if !ok {
		s.projects[proj] = nil
		return []issue.Issue{}, nil
	}

	out := make([]issue.Issue, 0, len(issues))
	for _, iss := range issues {
		if filter.Match(iss) {
			out = append(out, iss)
		}
	}
	return out, nil
}

// Modify mutates the stored issue under the write lock and returns a copy.
// The issue's id and project are kept whatever mutate does.
func (s *Store) Modify(_ context.Context, proj, id string, mutate func(*issue.Issue)) (*issue.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(proj, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	iss := s.projects[proj][i]
	mutate(&iss)
	iss.ID, iss.Project = id, proj
	s.projects[proj][i] = iss
	return &iss, nil
}

// Delete excises the issue from its project.
func (s *Store) Delete(_ context.Context, proj, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(proj, id)
	if i < 0 {
		return repository.ErrNotFound
	}
	issues := s.projects[proj]
	s.projects[proj] = append(issues[:i:i], issues[i+1:]...)
	delete(s.ids, id)
	return nil
}

// ListProjects summarizes every project seen by Create or List.
func (s *Store) ListProjects(_ context.Context) ([]project.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]project.Summary, 0, len(s.projects))
	for name, issues := range s.projects {
		sum := project.Summary{Name: name, IssueCount: len(issues)}
		for _, iss := range issues {
			if iss.Open {
				sum.OpenIssues++
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *Store) indexOf(proj, id string) int {
	if owner, ok := s.ids[id]; !ok || owner != proj {
		return -1
	}
	for i, iss := range s.projects[proj] {
		if iss.ID == id {
			return i
		}
	}
	return -1
}
