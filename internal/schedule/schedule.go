// Package schedule turns a tournament date table into the ordered list of
// scoreboard days to scrape.
package schedule

import (
	"fmt"
	"net/url"
	"sort"
	"time"
)

// Entry is one configured tournament day
type Entry struct {
	Date  string `koanf:"date" json:"date"`
	Round int    `koanf:"round" json:"round"`
}

// Day is a parsed tournament day
type Day struct {
	Date  time.Time
	Round int
}

// Build parses entries into days sorted by date. When a date is listed more
// than once the last entry wins.
func Build(entries []Entry) ([]Day, error) {
	byDate := make(map[string]Day, len(entries))

	for i, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("schedule entry %d: %w", i, err)
		}
		byDate[FormatDate(d)] = Day{Date: d, Round: e.Round}
	}

	days := make([]Day, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days, nil
}

// ScoreboardURL returns the scoreboard page for a day, e.g.
// http://scores.espn.go.com/ncb/scoreboard?date=20140320
func ScoreboardURL(base string, d time.Time) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing scoreboard URL: %w", err)
	}

	q := u.Query()
	q.Set("date", FormatDate(d))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// DefaultEntries is the 2014 NCAA tournament window, March 20-30
func DefaultEntries() []Entry {
	return []Entry{
		{Date: "20140320", Round: 2},
		{Date: "20140321", Round: 2},
		{Date: "20140322", Round: 3},
		{Date: "20140323", Round: 3},
		{Date: "20140327", Round: 4},
		{Date: "20140328", Round: 4},
		{Date: "20140329", Round: 5},
		{Date: "20140330", Round: 5},
	}
}
