// Package testserver starts the issue API over a fresh store for tests.
package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/issue-tracker/internal/config"
	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/memory"
	"github.com/ganot/issue-tracker/internal/sqlite"
	"github.com/ganot/issue-tracker/internal/transport"
	"github.com/stretchr/testify/require"
)

// Config selects the store backend and status contract.
type Config struct {
	Driver       string // config.DriverMemory (default) or config.DriverSQLite
	StrictStatus bool
	IssueOptions []issue.Option
}

type TestServer struct {
	Server   *httptest.Server
	Issues   *issue.Service
	Projects *project.Service
}

func New(t *testing.T, cfg Config) *TestServer {
	t.Helper()

	var (
		issueRepo   issue.Repository
		projectRepo project.Repository
	)
	switch cfg.Driver {
	case "", config.DriverMemory:
		store := memory.New()
		issueRepo, projectRepo = store, store
		t.Cleanup(func() { _ = store.Close() })
	case config.DriverSQLite:
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
		db, err := sqlite.Open(dsn)
		require.NoError(t, err)
		issueRepo = sqlite.NewIssueRepository(db)
		projectRepo = sqlite.NewProjectRepository(db)
		t.Cleanup(func() { _ = db.Close() })
	default:
		t.Fatalf("unknown driver %q", cfg.Driver)
	}

	issueSvc := issue.NewService(issueRepo, nil, cfg.IssueOptions...)
	projectSvc := project.NewService(projectRepo, nil)

	server := httptest.NewServer(transport.NewServer(issueSvc, projectSvc, transport.Options{
		StrictStatus: cfg.StrictStatus,
	}))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Issues:   issueSvc,
		Projects: projectSvc,
	}
}

// URL returns the collection URL for project.
func (ts *TestServer) URL(project string) string {
	return ts.Server.URL + "/api/issues/" + project
}
