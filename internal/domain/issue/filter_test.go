package issue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleIssues() []Issue {
	created := time.Date(2024, 3, 1, 12, 0, 0, 123_000_000, time.UTC)
	return []Issue{
		{ID: "a", Title: "One", Priority: "high", Status: "open", Open: true, CreatedOn: created, UpdatedOn: created},
		{ID: "b", Title: "Two", Priority: "low", Status: "open", Open: true, CreatedOn: created, UpdatedOn: created},
		{ID: "c", Title: "Three", Priority: "high", Status: "closed", Open: false, CreatedOn: created, UpdatedOn: created},
	}
}

func matchingIDs(f Filter, issues []Issue) []string {
	ids := []string{}
	for _, iss := range issues {
		if f.Match(iss) {
			ids = append(ids, iss.ID)
		}
	}
	return ids
}

func TestFilter_Empty(t *testing.T) {
	f := NewFilter(nil)
	require.Equal(t, []string{"a", "b", "c"}, matchingIDs(f, sampleIssues()))
}

func TestFilter_OpenAndPriority(t *testing.T) {
	issues := sampleIssues()

	require.Equal(t, []string{"a", "b"}, matchingIDs(NewFilter(map[string]string{"open": "true"}), issues))
	require.Equal(t, []string{"c"}, matchingIDs(NewFilter(map[string]string{"open": "false"}), issues))
	require.Equal(t, []string{"c"}, matchingIDs(NewFilter(map[string]string{"open": "yes"}), issues))
	require.Equal(t, []string{"a"}, matchingIDs(NewFilter(map[string]string{"open": "true", "priority": "high"}), issues))
}

func TestFilter_EmptyValuesIgnored(t *testing.T) {
	f := NewFilter(map[string]string{"priority": "", "bogus": ""})
	require.False(t, f.MatchesNothing())
	require.Empty(t, f.Terms())
	require.Len(t, matchingIDs(f, sampleIssues()), 3)
}

func TestFilter_UnknownFieldMatchesNothing(t *testing.T) {
	f := NewFilter(map[string]string{"bogus": "x", "priority": "high"})
	require.True(t, f.MatchesNothing())
	require.Empty(t, matchingIDs(f, sampleIssues()))
}

func TestFilter_StatusAliasAndTimestamps(t *testing.T) {
	issues := sampleIssues()

	require.Equal(t, []string{"c"}, matchingIDs(NewFilter(map[string]string{"status_text": "closed"}), issues))
	require.Equal(t, []string{"b"}, matchingIDs(NewFilter(map[string]string{"_id": "b"}), issues))
	require.Len(t, matchingIDs(NewFilter(map[string]string{"created_on": "2024-03-01T12:00:00.123Z"}), issues), 3)
	require.Empty(t, matchingIDs(NewFilter(map[string]string{"updated_on": "yesterday"}), issues))
}

func TestIssue_MarshalJSON(t *testing.T) {
	iss := sampleIssues()[0]
	iss.Project = "hidden"

	data, err := json.Marshal(iss)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "a", out["_id"])
	require.Equal(t, "One", out["issue_title"])
	require.Equal(t, true, out["open"])
	require.Equal(t, "2024-03-01T12:00:00.123Z", out["created_on"])
	require.NotContains(t, out, "project")
	require.Len(t, out, 10)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-01T12:00:00.123Z")
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T12:00:00.123Z", FormatTimestamp(ts))

	_, err = ParseTimestamp("2024-03-01")
	require.Error(t, err)
}
