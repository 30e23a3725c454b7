package issue

import "errors"

var (
	// ErrIssueNotFound indicates no issue with the id exists in the project.
	ErrIssueNotFound = errors.New("issue not found")
	// ErrMissingRequired indicates title, text or creator was left empty.
	ErrMissingRequired = errors.New("required field(s) missing")
	// ErrNoUpdateFields indicates an update carried no updatable field.
	ErrNoUpdateFields = errors.New("no update field(s) sent")
)
