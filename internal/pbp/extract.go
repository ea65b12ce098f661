package pbp

import (
	"errors"

	"github.com/pfrederiksen/pbp-scores/internal/event"
)

// Row is the text of one play-by-play table row, cell by cell, in page order
type Row []string

// Extraction is the result of scanning one game's rows
type Extraction struct {
	Events  []*event.GameEvent
	Skipped []*TokenFormatError // cells that looked like a score or clock but did not parse
	Periods int                 // periods seen, counting the one in progress at the last row
}

// scoreState is the running state folded over the rows of one game
type scoreState struct {
	period    int
	awayScore int
	homeScore int
	// lastClock is the most recent clock reading. A row that carries a score but
	// no clock is timed with the reading of an earlier row.
	lastClock float64
}

func newScoreState() scoreState {
	return scoreState{
		period:    1,
		lastClock: PeriodLength(1),
	}
}

// rowScan describes what a single row contributed
type rowScan struct {
	scored      bool // the row held at least one valid score cell
	scorePeriod int  // period in effect when the last score cell was read
	skipped     []*TokenFormatError
}

// scan applies every cell of row to s. Cells are classified first and only
// then acted on, so an unparseable cell never disturbs the state.
func (s scoreState) scan(row Row) (scoreState, rowScan) {
	var rs rowScan

	for _, cell := range row {
		tok, err := Classify(cell)
		if err != nil {
			var tfe *TokenFormatError
			if errors.As(err, &tfe) {
				rs.skipped = append(rs.skipped, tfe)
			}
			continue
		}

		switch tok.Kind {
		case TokenScore:
			s.awayScore, s.homeScore = tok.Away, tok.Home
			rs.scored = true
			rs.scorePeriod = s.period
		case TokenTimestamp:
			s.lastClock = tok.Clock()
		case TokenPeriodEnd:
			s.period++
		}
	}

	return s, rs
}

func (s scoreState) sameScore(o scoreState) bool {
	return s.awayScore == o.awayScore && s.homeScore == o.homeScore
}

// Extract scans rows in page order and emits one GameEvent per score change.
// A score that repeats the previous one emits nothing, so the opening "0-0"
// row of a page is silent. The event is built once the whole row has been
// scanned, timed with the row's clock reading (or the last one seen) and the
// period that was in effect when its score cell was read.
func Extract(identity event.TeamIdentity, roundNum int, rows []Row) *Extraction {
	result := &Extraction{
		Events: make([]*event.GameEvent, 0),
	}

	state := newScoreState()
	for _, row := range rows {
		next, rs := state.scan(row)
		result.Skipped = append(result.Skipped, rs.skipped...)

		if rs.scored && !next.sameScore(state) {
			evt := event.NewGameEvent(
				identity,
				roundNum,
				globalTime(next.lastClock, rs.scorePeriod),
				next.awayScore,
				next.homeScore,
			)
			result.Events = append(result.Events, evt)
		}

		state = next
	}
	result.Periods = state.period

	return result
}

// ExtractEvents is Extract without the diagnostics
func ExtractEvents(identity event.TeamIdentity, roundNum int, rows []Row) []*event.GameEvent {
	return Extract(identity, roundNum, rows).Events
}
