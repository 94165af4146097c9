package worklog

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD and returns the UTC calendar day.
// An empty value is the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return truncateDay(parsed), nil
}
