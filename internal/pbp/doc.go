// Package pbp turns the cell text of a play-by-play table into scoring events
// on a single game-long time axis.
//
// Game clocks count down within a period. ToGlobalTime maps a countdown and a
// period number onto minutes elapsed since tip-off: the two halves last 20
// minutes each and every overtime period lasts 5. Extract folds the rows of a
// page into GameEvents, one per score change, and Resample places those events
// onto a caller-chosen grid of checkpoints so that different games can be
// compared minute by minute.
package pbp
