package domain

// Filter selects a subset of transactions. Month takes precedence over
// Range; Description applies after either date filter.
type Filter struct {
	Month       *YearMonth
	Range       *DateRange
	Description string
}

// IsEmpty reports whether no filter is active.
func (f Filter) IsEmpty() bool {
	return f.Month == nil && f.Range == nil && f.Description == ""
}

// Period describes the active date filter for display, e.g. "2024-03" or
// "2024-01-01 to 2024-01-31". It is empty when no date filter applies.
func (f Filter) Period() string {
	switch {
	case f.Month != nil:
		return f.Month.String()
	case f.Range != nil && !f.Range.Start.IsZero() && !f.Range.End.IsZero():
		return f.Range.Start.String() + " to " + f.Range.End.String()
	default:
		return ""
	}
}
