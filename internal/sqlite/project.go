package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ganot/issue-tracker/internal/domain/project"
)

var _ project.Repository = (*ProjectRepository)(nil)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListProjects returns summaries for every registered project
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.name,
			COUNT(i.id) AS issue_count,
			COALESCE(SUM(CASE WHEN i.open = 1 THEN 1 ELSE 0 END), 0) AS open_issues
		FROM projects p
		LEFT JOIN issues i ON i.project = p.name
		GROUP BY p.name
		ORDER BY p.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		if err := rows.Scan(&s.Name, &s.IssueCount, &s.OpenIssues); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

func ensureProject(ctx context.Context, db *DB, name string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO projects (name, created_at) VALUES (?, ?)`,
		name, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to register project: %w", err)
	}
	return nil
}
