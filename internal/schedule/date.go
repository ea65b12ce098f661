package schedule

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"Jan 02 2006",
	"Jan 2 2006",
	"01/02/2006",
}

// ParseDate parses a schedule date.
// Supports formats: "20140320", "2014-03-20", "Mar 20 2014", "Mar 2 2014", "03/20/2014"
func ParseDate(dateText string) (time.Time, error) {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", dateText)
}

// FormatDate renders a date the way scoreboard URLs expect it
func FormatDate(t time.Time) string {
	return t.Format("20060102")
}
