package issue

import "sort"

// Term is a single equality predicate on a canonical field.
type Term struct {
	Field string
	Value string
}

// Filter is a conjunction of equality terms.
type Filter struct {
	terms []Term
	none  bool
}

var filterable = map[string]struct{}{
	FieldID:         {},
	FieldTitle:      {},
	FieldText:       {},
	FieldCreatedBy:  {},
	FieldAssignedTo: {},
	FieldStatus:     {},
	FieldPriority:   {},
	FieldOpen:       {},
	FieldCreatedOn:  {},
	FieldUpdatedOn:  {},
}

// NewFilter builds a filter from query parameters. Empty values are
// skipped. A key that names no issue field makes the filter match nothing.
func NewFilter(params map[string]string) Filter {
	var f Filter
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		if value == "" {
			continue
		}
		field := CanonicalField(key)
		if _, ok := filterable[field]; !ok {
			f.none = true
			continue
		}
		f.terms = append(f.terms, Term{Field: field, Value: value})
	}
	return f
}

// Terms returns the filter's predicates in field order.
func (f Filter) Terms() []Term {
	return f.terms
}

// MatchesNothing reports whether the filter references an unknown field.
func (f Filter) MatchesNothing() bool {
	return f.none
}

// Match reports whether iss satisfies every term.
func (f Filter) Match(iss Issue) bool {
	if f.none {
		return false
	}
	for _, t := range f.terms {
		if !t.match(iss) {
			return false
		}
	}
	return true
}

func (t Term) match(iss Issue) bool {
	switch t.Field {
	case FieldOpen:
		return iss.Open == (t.Value == "true")
	case FieldID:
		return iss.ID == t.Value
	case FieldTitle:
		return iss.Title == t.Value
	case FieldText:
		return iss.Text == t.Value
	case FieldCreatedBy:
		return iss.CreatedBy == t.Value
	case FieldAssignedTo:
		return iss.AssignedTo == t.Value
	case FieldStatus:
		return iss.Status == t.Value
	case FieldPriority:
		return iss.Priority == t.Value
	case FieldCreatedOn:
		return FormatTimestamp(iss.CreatedOn) == t.Value
	case FieldUpdatedOn:
		return FormatTimestamp(iss.UpdatedOn) == t.Value
	}
	return false
}
