// Package event provides the record types produced by play-by-play extraction.
//
// A GameEvent is one row of the exported dataset: the score of a game at a point
// on the global time axis, together with the identity and ranking of both teams.
// Score differentials are always expressed from the better-ranked team's side so
// that rows from different games can be compared directly.
package event
