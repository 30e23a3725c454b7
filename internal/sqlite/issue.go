package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/repository"
)

var _ issue.Repository = (*IssueRepository)(nil)

// columns maps filterable string fields to their column
var columns = map[string]string{
	issue.FieldID:         "id",
	issue.FieldTitle:      "issue_title",
	issue.FieldText:       "issue_text",
	issue.FieldCreatedBy:  "created_by",
	issue.FieldAssignedTo: "assigned_to",
	issue.FieldStatus:     "status",
	issue.FieldPriority:   "priority",
}

const issueColumns = `id, project, issue_title, issue_text, created_by, assigned_to,
	status, priority, open, created_on, updated_on`

// IssueRepository implements issue.Repository for SQLite
type IssueRepository struct {
	db *DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create inserts an issue, registering its project first
func (r *IssueRepository) Create(ctx context.Context, iss *issue.Issue) error {
	if err := ensureProject(ctx, r.db, iss.Project); err != nil {
		return err
	}

	query := `
		INSERT INTO issues (
			id, project, issue_title, issue_text, created_by, assigned_to,
			status, priority, open, created_on, updated_on
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		iss.ID,
		iss.Project,
		iss.Title,
		iss.Text,
		iss.CreatedBy,
		iss.AssignedTo,
		iss.Status,
		iss.Priority,
		iss.Open,
		iss.CreatedOn.UnixMilli(),
		iss.UpdatedOn.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// Get retrieves an issue by project and id
func (r *IssueRepository) Get(ctx context.Context, project, id string) (*issue.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE project = ? AND id = ?`

	iss, err := scanIssue(r.db.QueryRowContext(ctx, query, project, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	return iss, nil
}

// List returns the project's issues matching filter in creation order
func (r *IssueRepository) List(ctx context.Context, project string, filter issue.Filter) ([]issue.Issue, error) {
	if err := ensureProject(ctx, r.db, project); err != nil {
		return nil, err
	}
	if filter.MatchesNothing() {
		return []issue.Issue{}, nil
	}

	query := `SELECT ` + issueColumns + ` FROM issues WHERE project = ?`
	args := []interface{}{project}
	conditions := []string{}

	for _, term := range filter.Terms() {
		switch term.Field {
		case issue.FieldOpen:
			conditions = append(conditions, "open = ?")
			args = append(args, term.Value == "true")
		case issue.FieldCreatedOn, issue.FieldUpdatedOn:
			ts, err := issue.ParseTimestamp(term.Value)
			if err != nil {
				return []issue.Issue{}, nil
			}
			conditions = append(conditions, term.Field+" = ?")
			args = append(args, ts.UnixMilli())
		default:
			column, ok := columns[term.Field]
			if !ok {
				return []issue.Issue{}, nil
			}
			conditions = append(conditions, column+" = ?")
			args = append(args, term.Value)
		}
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues := []issue.Issue{}
	for rows.Next() {
		iss, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, *iss)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}

	return issues, nil
}

// Modify loads the issue, applies mutate and writes every mutable column back
// inside one transaction
func (r *IssueRepository) Modify(ctx context.Context, project, id string, mutate func(*issue.Issue)) (*issue.Issue, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + issueColumns + ` FROM issues WHERE project = ? AND id = ?`
	iss, err := scanIssue(tx.QueryRowContext(ctx, query, project, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	mutate(iss)
	iss.ID, iss.Project = id, project

	update := `
		UPDATE issues
		SET issue_title = ?, issue_text = ?, created_by = ?, assigned_to = ?,
		    status = ?, priority = ?, open = ?, updated_on = ?
		WHERE project = ? AND id = ?
	`
	result, err := tx.ExecContext(ctx, update,
		iss.Title,
		iss.Text,
		iss.CreatedBy,
		iss.AssignedTo,
		iss.Status,
		iss.Priority,
		iss.Open,
		iss.UpdatedOn.UnixMilli(),
		iss.Project,
		iss.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return iss, nil
}

// Delete removes an issue
func (r *IssueRepository) Delete(ctx context.Context, project, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE project = ? AND id = ?`, project, id)
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssue(row rowScanner) (*issue.Issue, error) {
	var iss issue.Issue
	var createdOn, updatedOn int64
	err := row.Scan(
		&iss.ID,
		&iss.Project,
		&iss.Title,
		&iss.Text,
		&iss.CreatedBy,
		&iss.AssignedTo,
		&iss.Status,
		&iss.Priority,
		&iss.Open,
		&createdOn,
		&updatedOn,
	)
	if err != nil {
		return nil, err
	}
	iss.CreatedOn = time.UnixMilli(createdOn).UTC()
	iss.UpdatedOn = time.UnixMilli(updatedOn).UTC()
	return &iss, nil
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
