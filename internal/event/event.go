package event

import (
	"fmt"
	"strconv"
)

// Unranked is the rank used for both teams when a page has no ranking table.
const Unranked = -1

// Columns is the column order of the tabular export
var Columns = []string{
	"game_id",
	"round_num",
	"away",
	"away_rank",
	"home",
	"home_rank",
	"time",
	"away_score",
	"home_score",
	"diff_score",
	"rank_diff",
}

// TeamIdentity names and ranks the two teams of a game
type TeamIdentity struct {
	Away     string `json:"away"`
	AwayRank int    `json:"away_rank"`
	Home     string `json:"home"`
	HomeRank int    `json:"home_rank"`
}

// GameID returns the "away-home" identifier used for every row of a game
func (t TeamIdentity) GameID() string {
	return fmt.Sprintf("%s-%s", t.Away, t.Home)
}

// RankDiff returns |away_rank - home_rank|. It is 0 for unranked games.
func (t TeamIdentity) RankDiff() int {
	d := t.AwayRank - t.HomeRank
	if d < 0 {
		return -d
	}
	return d
}

// HomeBetterRanked reports whether the home team has the numerically lower rank
func (t TeamIdentity) HomeBetterRanked() bool {
	return t.HomeRank < t.AwayRank
}

// DiffScore returns the better-ranked team's margin. When the ranks are equal
// (including the unranked case) the away team is treated as the reference side.
func (t TeamIdentity) DiffScore(awayScore, homeScore int) int {
	if t.HomeBetterRanked() {
		return homeScore - awayScore
	}
	return awayScore - homeScore
}

// GameEvent is the score of one game at one point of the global time axis
type GameEvent struct {
	GameID    string  `json:"game_id"`
	RoundNum  int     `json:"round_num"`
	Away      string  `json:"away"`
	AwayRank  int     `json:"away_rank"`
	Home      string  `json:"home"`
	HomeRank  int     `json:"home_rank"`
	Time      float64 `json:"time"` // minutes since tip-off
	AwayScore int     `json:"away_score"`
	HomeScore int     `json:"home_score"`
	DiffScore int     `json:"diff_score"`
	RankDiff  int     `json:"rank_diff"`
}

// NewGameEvent creates a GameEvent with the derived fields populated
func NewGameEvent(identity TeamIdentity, roundNum int, globalTime float64, awayScore, homeScore int) *GameEvent {
	return &GameEvent{
		GameID:    identity.GameID(),
		RoundNum:  roundNum,
		Away:      identity.Away,
		AwayRank:  identity.AwayRank,
		Home:      identity.Home,
		HomeRank:  identity.HomeRank,
		Time:      globalTime,
		AwayScore: awayScore,
		HomeScore: homeScore,
		DiffScore: identity.DiffScore(awayScore, homeScore),
		RankDiff:  identity.RankDiff(),
	}
}

// At returns a copy of the event placed at time t. The receiver is not modified.
func (e *GameEvent) At(t float64) *GameEvent {
	clone := *e
	clone.Time = t
	return &clone
}

// Record returns the event's values as strings, in Columns order
func (e *GameEvent) Record() []string {
	return []string{
		e.GameID,
		strconv.Itoa(e.RoundNum),
		e.Away,
		strconv.Itoa(e.AwayRank),
		e.Home,
		strconv.Itoa(e.HomeRank),
		strconv.FormatFloat(e.Time, 'f', -1, 64),
		strconv.Itoa(e.AwayScore),
		strconv.Itoa(e.HomeScore),
		strconv.Itoa(e.DiffScore),
		strconv.Itoa(e.RankDiff),
	}
}
