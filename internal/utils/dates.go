package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout is the layout used for due date input and output.
const DefaultDateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string matches no accepted layout.
var ErrInvalidDate = errors.New("invalid date")

// fallbackLayouts are tried after the caller's layout.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	DefaultDateLayout,
}

// FormatDate formats t with layout, or DefaultDateLayout when layout is empty.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// ParseDate parses s in loc using layout first, then RFC3339,
// "2006-01-02 15:04", and DefaultDateLayout. A nil loc means time.Local.
func ParseDate(s, layout string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}
	if loc == nil {
		loc = time.Local
	}

	layouts := fallbackLayouts
	if layout != "" {
		layouts = append([]string{layout}, fallbackLayouts...)
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected %s)", ErrInvalidDate, s, FormatDate(time.Date(2006, 1, 2, 0, 0, 0, 0, loc), layout))
}
