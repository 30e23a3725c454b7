package issue

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the wire format for created_on and updated_on.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultStatus is assigned when an issue is created without a status.
const DefaultStatus = "open"

// Issue is a single ticket within a project.
type Issue struct {
	ID         string
	Project    string
	Title      string
	Text       string
	CreatedBy  string
	AssignedTo string
	Status     string
	Priority   string
	Open       bool
	CreatedOn  time.Time
	UpdatedOn  time.Time
}

type wireIssue struct {
	ID         string `json:"_id"`
	Title      string `json:"issue_title"`
	Text       string `json:"issue_text"`
	CreatedBy  string `json:"created_by"`
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status"`
	Open       bool   `json:"open"`
	Priority   string `json:"priority"`
	CreatedOn  string `json:"created_on"`
	UpdatedOn  string `json:"updated_on"`
}

// MarshalJSON renders the issue with its wire field names and ISO-8601
// millisecond timestamps. The owning project is not part of the payload.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireIssue{
		ID:         i.ID,
		Title:      i.Title,
		Text:       i.Text,
		CreatedBy:  i.CreatedBy,
		AssignedTo: i.AssignedTo,
		Status:     i.Status,
		Open:       i.Open,
		Priority:   i.Priority,
		CreatedOn:  FormatTimestamp(i.CreatedOn),
		UpdatedOn:  FormatTimestamp(i.UpdatedOn),
	})
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a value produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
