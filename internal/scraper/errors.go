package scraper

import (
	"errors"
	"fmt"
)

// ErrMissingTeams is returned when the linescore table does not name two teams.
var ErrMissingTeams = errors.New("linescore table does not name two teams")

// MissingRankError reports a ranking table that is present but does not hold
// exactly two readable ranks. A page without any rank cells is not an error:
// both teams are unranked.
type MissingRankError struct {
	Found []string // non-empty rank cell texts
	Err   error
}

func (e *MissingRankError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reading team ranks %q: %v", e.Found, e.Err)
	}
	return fmt.Sprintf("want 2 team ranks, found %d: %q", len(e.Found), e.Found)
}

func (e *MissingRankError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Temporary reports whether retrying the request might succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
