package project

import "context"

// Repository lists the projects known to the issue store.
type Repository interface {
	ListProjects(ctx context.Context) ([]Summary, error)
}
