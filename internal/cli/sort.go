package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/pbp-scores/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage     SortOrder = "page"
	SortByGame     SortOrder = "game"
	SortByTime     SortOrder = "time"
	SortByRankDiff SortOrder = "rank-diff"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "":
		return SortByPage, nil
	case SortByPage, SortByGame, SortByTime, SortByRankDiff:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be page, game, time or rank-diff)", s)
	}
}

// sortEvents sorts events in place. Sorting is stable, so rows that compare
// equal keep their scrape order. SortByPage leaves the slice untouched.
func sortEvents(events []*event.GameEvent, sortOrder SortOrder) {
	switch sortOrder {
	case SortByGame:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].GameID != events[j].GameID {
				return events[i].GameID < events[j].GameID
			}
			return events[i].Time < events[j].Time
		})
	case SortByTime:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Time != events[j].Time {
				return events[i].Time < events[j].Time
			}
			return events[i].GameID < events[j].GameID
		})
	case SortByRankDiff:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].RankDiff != events[j].RankDiff {
				return events[i].RankDiff > events[j].RankDiff
			}
			// If rank gaps are equal, group by game
			return events[i].GameID < events[j].GameID
		})
	}
}
