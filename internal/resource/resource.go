// Package resource implements the issue collection resource independent of
// the transport carrying it. HTTP and MCP both translate their requests into
// Fields and write back the returned Outcome.
package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/issue-tracker/internal/domain/issue"
)

// Messages carried in response payloads.
const (
	MsgRequiredMissing = "required field(s) missing"
	MsgMissingID       = "missing _id"
	MsgNoUpdateFields  = "no update field(s) sent"
	MsgCouldNotUpdate  = "could not update"
	MsgCouldNotDelete  = "could not delete"
	MsgUpdated         = "successfully updated"
	MsgDeleted         = "successfully deleted"
)

// Kind classifies an Outcome for transports that map it to a status code.
type Kind int

const (
	KindOK Kind = iota
	KindInvalid
	KindNotFound
)

// Fields holds decoded request body values keyed by wire name.
type Fields map[string]any

// ErrorBody is the in-band error payload.
type ErrorBody struct {
	Error string `json:"error"`
	ID    string `json:"_id,omitempty"`
}

// ResultBody confirms a successful update or delete.
type ResultBody struct {
	Result string `json:"result"`
	ID     string `json:"_id"`
}

// Outcome is the payload of a handled request plus its classification.
type Outcome struct {
	Kind Kind
	Body any
}

// IsError reports whether the outcome carries an in-band error.
func (o Outcome) IsError() bool {
	return o.Kind != KindOK
}

// IssueService is the issue behavior the resource needs.
type IssueService interface {
	Create(ctx context.Context, project string, req issue.CreateRequest) (*issue.Issue, error)
	List(ctx context.Context, project string, filter issue.Filter) ([]issue.Issue, error)
	Update(ctx context.Context, project, id string, set issue.UpdateSet) (*issue.Issue, error)
	Delete(ctx context.Context, project, id string) error
}

// Issues handles the per-project issue collection.
type Issues struct {
	svc IssueService
}

// NewIssues creates the issue collection resource.
func NewIssues(svc IssueService) *Issues {
	return &Issues{svc: svc}
}

// List returns the project's issues filtered by query.
func (h *Issues) List(ctx context.Context, project string, query map[string]string) (Outcome, error) {
	issues, err := h.svc.List(ctx, project, issue.NewFilter(query))
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: KindOK, Body: issues}, nil
}

// Create adds an issue built from body.
func (h *Issues) Create(ctx context.Context, project string, body Fields) (Outcome, error) {
	req := issue.CreateRequest{
		Title:      body.Required(issue.FieldTitle),
		Text:       body.Required(issue.FieldText),
		CreatedBy:  body.Required(issue.FieldCreatedBy),
		AssignedTo: body.String(issue.FieldAssignedTo),
		Status:     body.Status(),
		Priority:   body.String(issue.FieldPriority),
	}

	iss, err := h.svc.Create(ctx, project, req)
	if errors.Is(err, issue.ErrMissingRequired) {
		return invalid(MsgRequiredMissing, ""), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: KindOK, Body: iss}, nil
}

// Update changes the fields present in body on the issue named by _id.
func (h *Issues) Update(ctx context.Context, project string, body Fields) (Outcome, error) {
	id := body.String(issue.FieldID)
	if id == "" {
		return invalid(MsgMissingID, ""), nil
	}

	set := issue.NewUpdateSet(body)
	if set.Empty() {
		return invalid(MsgNoUpdateFields, id), nil
	}

	_, err := h.svc.Update(ctx, project, id, set)
	switch {
	case errors.Is(err, issue.ErrIssueNotFound):
		return notFound(MsgCouldNotUpdate, id), nil
	case err != nil:
		return Outcome{}, fmt.Errorf("updating %s: %w", id, err)
	}
	return Outcome{Kind: KindOK, Body: ResultBody{Result: MsgUpdated, ID: id}}, nil
}

// Delete removes the issue named by _id.
func (h *Issues) Delete(ctx context.Context, project string, body Fields) (Outcome, error) {
	id := body.String(issue.FieldID)
	if id == "" {
		return invalid(MsgMissingID, ""), nil
	}

	err := h.svc.Delete(ctx, project, id)
	switch {
	case errors.Is(err, issue.ErrIssueNotFound):
		return notFound(MsgCouldNotDelete, id), nil
	case err != nil:
		return Outcome{}, fmt.Errorf("deleting %s: %w", id, err)
	}
	return Outcome{Kind: KindOK, Body: ResultBody{Result: MsgDeleted, ID: id}}, nil
}

// String returns the named value rendered as a string, or "" when absent.
func (f Fields) String(name string) string {
	return issue.StringValue(f[name])
}

// Required returns the named value as a string, or "" when it is absent or
// falsy (false, 0, empty string).
func (f Fields) Required(name string) string {
	return issue.TruthyString(f[name])
}

// Status returns status, falling back to its status_text alias.
func (f Fields) Status() string {
	if s := f.String(issue.FieldStatus); s != "" {
		return s
	}
	return f.String(issue.FieldStatusText)
}

func invalid(msg, id string) Outcome {
	return Outcome{Kind: KindInvalid, Body: ErrorBody{Error: msg, ID: id}}
}

func notFound(msg, id string) Outcome {
	return Outcome{Kind: KindNotFound, Body: ErrorBody{Error: msg, ID: id}}
}
