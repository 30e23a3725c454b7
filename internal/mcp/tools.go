package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/resource"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListIssuesParams struct {
	Project string            `json:"project" jsonschema:"project name"`
	Filters map[string]string `json:"filters,omitempty" jsonschema:"equality filters keyed by issue field such as open or priority"`
}

type CreateIssueParams struct {
	Project    string `json:"project" jsonschema:"project name"`
	Title      string `json:"issue_title,omitempty" jsonschema:"issue title (required)"`
	Text       string `json:"issue_text,omitempty" jsonschema:"issue description (required)"`
	CreatedBy  string `json:"created_by,omitempty" jsonschema:"reporter (required)"`
	AssignedTo string `json:"assigned_to,omitempty"`
	Status     string `json:"status,omitempty" jsonschema:"free-form status, defaults to open"`
	Priority   string `json:"priority,omitempty"`
}

type UpdateIssueParams struct {
	Project string         `json:"project" jsonschema:"project name"`
	ID      string         `json:"_id,omitempty" jsonschema:"id of the issue to change"`
	Fields  map[string]any `json:"fields,omitempty" jsonschema:"new values keyed by field name"`
}

type DeleteIssueParams struct {
	Project string `json:"project" jsonschema:"project name"`
	ID      string `json:"_id,omitempty" jsonschema:"id of the issue to remove"`
}

type ListProjectsParams struct{}

type tools struct {
	issues   *resource.Issues
	projects ProjectService
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_issues",
		Description: "List issues in a project, optionally filtered by field equality",
	}, t.listIssues)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_issue",
		Description: "File a new issue; issue_title, issue_text and created_by are required",
	}, t.createIssue)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_issue",
		Description: "Change fields of an existing issue (issue_title, issue_text, created_by, assigned_to, status, priority, open)",
	}, t.updateIssue)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_issue",
		Description: "Delete an issue by id",
	}, t.deleteIssue)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every known project with issue counts",
	}, t.listProjects)
}

func (t *tools) listIssues(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListIssuesParams) (*sdkmcp.CallToolResult, any, error) {
	out, err := t.issues.List(ctx, in.Project, in.Filters)
	return toolResult(out, err)
}

func (t *tools) createIssue(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateIssueParams) (*sdkmcp.CallToolResult, any, error) {
	out, err := t.issues.Create(ctx, in.Project, resource.Fields{
		issue.FieldTitle:      in.Title,
		issue.FieldText:       in.Text,
		issue.FieldCreatedBy:  in.CreatedBy,
		issue.FieldAssignedTo: in.AssignedTo,
		issue.FieldStatus:     in.Status,
		issue.FieldPriority:   in.Priority,
	})
	return toolResult(out, err)
}

func (t *tools) updateIssue(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateIssueParams) (*sdkmcp.CallToolResult, any, error) {
	fields := resource.Fields{}
	for name, value := range in.Fields {
		fields[name] = value
	}
	fields[issue.FieldID] = in.ID

	out, err := t.issues.Update(ctx, in.Project, fields)
	return toolResult(out, err)
}

func (t *tools) deleteIssue(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteIssueParams) (*sdkmcp.CallToolResult, any, error) {
	out, err := t.issues.Delete(ctx, in.Project, resource.Fields{issue.FieldID: in.ID})
	return toolResult(out, err)
}

func (t *tools) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	summaries, err := t.projects.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(resource.Outcome{Kind: resource.KindOK, Body: summaries}, nil)
}

// toolResult renders an outcome as JSON text. In-band errors become tool
// errors so the caller sees IsError.
func toolResult(out resource.Outcome, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(out.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: out.IsError(),
	}, nil, nil
}
