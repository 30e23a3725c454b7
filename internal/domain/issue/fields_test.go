package issue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenValue(t *testing.T) {
	require.False(t, OpenValue("false"))
	require.True(t, OpenValue(false))
	require.True(t, OpenValue(true))
	require.True(t, OpenValue(float64(0)))
	require.True(t, OpenValue(json.Number("0")))
	require.True(t, OpenValue("true"))
	require.True(t, OpenValue("no"))
	require.True(t, OpenValue(""))
	require.True(t, OpenValue("FALSE"))
}

func TestTruthyString(t *testing.T) {
	require.Equal(t, "", TruthyString(false))
	require.Equal(t, "", TruthyString(float64(0)))
	require.Equal(t, "", TruthyString(json.Number("0")))
	require.Equal(t, "", TruthyString(json.Number("0.0")))
	require.Equal(t, "", TruthyString(""))
	require.Equal(t, "", TruthyString(nil))
	require.Equal(t, "true", TruthyString(true))
	require.Equal(t, "7", TruthyString(json.Number("7")))
	require.Equal(t, "0", TruthyString("0"))
	require.Equal(t, "title", TruthyString("title"))
}

func TestStringValue(t *testing.T) {
	require.Equal(t, "abc", StringValue("abc"))
	require.Equal(t, "3", StringValue(float64(3)))
	require.Equal(t, "2.5", StringValue(json.Number("2.5")))
	require.Equal(t, "true", StringValue(true))
	require.Equal(t, "first", StringValue([]string{"first", "second"}))
	require.Equal(t, "", StringValue(nil))
}

func TestUpdateSet(t *testing.T) {
	set := NewUpdateSet(map[string]any{
		"_id":         "x",
		"created_on":  "2024-01-01T00:00:00.000Z",
		"priority":    "high",
		"status_text": "done",
		"assigned_to": nil,
	})
	require.False(t, set.Empty())
	require.Equal(t, []string{"priority", "status"}, set.Fields())

	iss := Issue{Priority: "low", Status: "open", AssignedTo: "bob"}
	set.Apply(&iss)
	require.Equal(t, "high", iss.Priority)
	require.Equal(t, "done", iss.Status)
	require.Equal(t, "bob", iss.AssignedTo)
}

func TestUpdateSet_StatusWinsOverAlias(t *testing.T) {
	for i := 0; i < 20; i++ {
		set := NewUpdateSet(map[string]any{
			"status":      "closed",
			"status_text": "ignored",
			"a":           1, "b": 2, "c": 3,
		})
		iss := Issue{Status: "open"}
		set.Apply(&iss)
		require.Equal(t, "closed", iss.Status)
	}

	set := NewUpdateSet(map[string]any{"status": nil, "status_text": "from alias"})
	iss := Issue{}
	set.Apply(&iss)
	require.Equal(t, "from alias", iss.Status)
}

func TestUpdateSet_EmptyStringIsAnUpdate(t *testing.T) {
	set := NewUpdateSet(map[string]any{"assigned_to": ""})
	require.False(t, set.Empty())

	iss := Issue{AssignedTo: "bob"}
	set.Apply(&iss)
	require.Equal(t, "", iss.AssignedTo)
}

func TestIsUpdatable(t *testing.T) {
	for _, name := range []string{"issue_title", "issue_text", "created_by", "assigned_to", "status", "status_text", "priority", "open"} {
		require.True(t, IsUpdatable(name), name)
	}
	for _, name := range []string{"_id", "created_on", "updated_on", "project", ""} {
		require.False(t, IsUpdatable(name), name)
	}
}
