package shared

import "time"

// DateOf returns the calendar date of t as midnight UTC.
// Comparisons between DateOf values ignore time of day and zone offsets.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (2006-01-02)
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// ParseOptionalDate parses s when it is set and non-empty; a malformed date is
// a validation error
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return nil, NewValidationError(field + " must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

// FormatOptionalDate renders a nullable calendar date
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
