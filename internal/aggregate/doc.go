// Package aggregate runs the scrape pipeline over games, scoreboard days and
// a whole tournament schedule.
//
// A game is fetched, its rows are turned into score-change events and, unless
// the pipeline runs in raw mode, the events are seeded with a 0-0 tip-off and
// resampled onto the checkpoint grid. Days fan games out over a bounded
// worker pool but always return results in scoreboard link order. A game that
// fails is logged and skipped; a day whose scoreboard cannot be fetched is
// reported and the tournament moves on.
package aggregate
