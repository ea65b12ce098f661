package pbp

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errEmptyNumber = errors.New("empty")
	errNotNumber   = errors.New("not a number")
)

// ParseClock converts a "MM:SS" game clock into fractional minutes remaining
// in the period, e.g. "05:30" -> 5.5.
func ParseClock(token string) (float64, error) {
	minutes, seconds, err := splitClock(token)
	if err != nil {
		return 0, err
	}
	return clockMinutes(minutes, seconds), nil
}

func clockMinutes(minutes, seconds int) float64 {
	return float64(minutes) + float64(seconds)/60
}

// splitClock returns the two halves of a clock token
func splitClock(token string) (int, int, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return 0, 0, &MalformedClockError{Token: token, Reason: "want exactly one ':'"}
	}

	minutes, err := parseCount(parts[0])
	if err != nil {
		return 0, 0, &MalformedClockError{Token: token, Reason: "minutes: " + err.Error()}
	}
	seconds, err := parseCount(parts[1])
	if err != nil {
		return 0, 0, &MalformedClockError{Token: token, Reason: "seconds: " + err.Error()}
	}

	return minutes, seconds, nil
}

// parseCount parses an unsigned decimal integer. Signs are rejected, so the
// result is never negative.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, errEmptyNumber
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotNumber
		}
	}
	return strconv.Atoi(s)
}
