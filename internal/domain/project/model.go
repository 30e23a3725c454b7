package project

// Summary describes a project the store has seen.
type Summary struct {
	Name       string `json:"project"`
	IssueCount int    `json:"issue_count"`
	OpenIssues int    `json:"open_issues"`
}
