package issue

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Wire names of issue attributes.
const (
	FieldID         = "_id"
	FieldTitle      = "issue_title"
	FieldText       = "issue_text"
	FieldCreatedBy  = "created_by"
	FieldAssignedTo = "assigned_to"
	FieldStatus     = "status"
	FieldPriority   = "priority"
	FieldOpen       = "open"
	FieldCreatedOn  = "created_on"
	FieldUpdatedOn  = "updated_on"

	// FieldStatusText is accepted on input as an alias of FieldStatus.
	FieldStatusText = "status_text"
)

// CanonicalField resolves input aliases to their canonical wire name.
func CanonicalField(name string) string {
	if name == FieldStatusText {
		return FieldStatus
	}
	return name
}

type setter func(iss *Issue, value any)

// updatable enumerates every field an update may touch.
var updatable = map[string]setter{
	FieldTitle:      func(iss *Issue, v any) { iss.Title = StringValue(v) },
	FieldText:       func(iss *Issue, v any) { iss.Text = StringValue(v) },
	FieldCreatedBy:  func(iss *Issue, v any) { iss.CreatedBy = StringValue(v) },
	FieldAssignedTo: func(iss *Issue, v any) { iss.AssignedTo = StringValue(v) },
	FieldStatus:     func(iss *Issue, v any) { iss.Status = StringValue(v) },
	FieldPriority:   func(iss *Issue, v any) { iss.Priority = StringValue(v) },
	FieldOpen:       func(iss *Issue, v any) { iss.Open = OpenValue(v) },
}

// IsUpdatable reports whether name (or its alias) can be changed by an update.
func IsUpdatable(name string) bool {
	_, ok := updatable[CanonicalField(name)]
	return ok
}

// UpdateSet collects field assignments for a single update.
type UpdateSet struct {
	values map[string]any
}

// NewUpdateSet builds an UpdateSet from raw request fields, keeping only
// updatable fields with non-nil values. A status value wins over its
// status_text alias.
func NewUpdateSet(fields map[string]any) UpdateSet {
	var set UpdateSet
	for name, value := range fields {
		if name == FieldStatusText && fields[FieldStatus] != nil {
			continue
		}
		set.Set(name, value)
	}
	return set
}

// Set records an assignment. It returns false when the field is not
// updatable or the value is nil.
func (u *UpdateSet) Set(name string, value any) bool {
	name = CanonicalField(name)
	if _, ok := updatable[name]; !ok || value == nil {
		return false
	}
	if u.values == nil {
		u.values = make(map[string]any)
	}
	u.values[name] = value
	return true
}

// Empty reports whether no field was set.
func (u UpdateSet) Empty() bool {
	return len(u.values) == 0
}

// Fields returns the canonical names of the fields set, sorted.
func (u UpdateSet) Fields() []string {
	names := make([]string, 0, len(u.values))
	for name := range u.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply writes every recorded assignment to iss.
func (u UpdateSet) Apply(iss *Issue) {
	for name, value := range u.values {
		updatable[name](iss, value)
	}
}

// StringValue renders a decoded request value as a string.
func StringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case []string:
		if len(val) == 0 {
			return ""
		}
		return val[0]
	default:
		return fmt.Sprint(val)
	}
}

// OpenValue coerces an update value for the open flag. Only the string
// "false" closes an issue; any other value, boolean false included, opens it.
func OpenValue(v any) bool {
	s, ok := v.(string)
	return !ok || s != "false"
}

// TruthyString renders v like StringValue but yields "" for the falsy values
// false and numeric zero, so they do not satisfy a required field.
func TruthyString(v any) string {
	switch val := v.(type) {
	case bool:
		if !val {
			return ""
		}
	case float64:
		if val == 0 {
			return ""
		}
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
	}
	return StringValue(v)
}
