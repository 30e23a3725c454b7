package issue

import "context"

// Repository provides storage for issues partitioned by project.
type Repository interface {
	Create(ctx context.Context, iss *Issue) error
	Get(ctx context.Context, project, id string) (*Issue, error)
	List(ctx context.Context, project string, filter Filter) ([]Issue, error)
	// Modify runs mutate on the stored issue and persists the result as one
	// step, so concurrent modifications of the same issue never interleave.
	Modify(ctx context.Context, project, id string, mutate func(*Issue)) (*Issue, error)
	Delete(ctx context.Context, project, id string) error
}
