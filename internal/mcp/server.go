package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/resource"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `Issue tracker. Issues live in named projects; a project is created the
first time an issue is filed or listed in it. Use create_issue, list_issues,
update_issue and delete_issue with the project name, and list_projects to see
known projects. Responses are JSON; a payload with an "error" key means the
request was rejected.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List(ctx context.Context) ([]project.Summary, error)
}

// Config contains server configuration.
type Config struct {
	Issues   resource.IssueService
	Projects ProjectService
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "issue-tracker",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		issues:   resource.NewIssues(cfg.Issues),
		projects: cfg.Projects,
	})

	return server
}
