package pbp

import (
	"github.com/pfrederiksen/pbp-scores/internal/event"
)

// Seed prepends a 0-0 event at time 0 so that checkpoints before the first
// basket resample to the opening score. Nothing is added when the first event
// already sits at or before tip-off. The input slice is not modified.
func Seed(identity event.TeamIdentity, roundNum int, events []*event.GameEvent) []*event.GameEvent {
	if len(events) > 0 && events[0].Time <= 0 {
		return events
	}

	seeded := make([]*event.GameEvent, 0, len(events)+1)
	seeded = append(seeded, event.NewGameEvent(identity, roundNum, 0, 0, 0))
	return append(seeded, events...)
}

// Resample returns one event per checkpoint: a copy of the latest event at or
// before the checkpoint, with Time set to the checkpoint. Events must be in
// ascending time order and checkpoints non-decreasing.
//
// Checkpoints before the first event get the first event and checkpoints
// after the last event get the last one. When several events share a time the
// last of them is the one delivered. The cursor only moves forward, so the
// work is linear in len(events)+len(checkpoints).
func Resample(events []*event.GameEvent, checkpoints []float64) ([]*event.GameEvent, error) {
	if len(events) == 0 {
		return nil, ErrEmptyEvents
	}

	out := make([]*event.GameEvent, 0, len(checkpoints))
	cursor := 0
	for _, t := range checkpoints {
		for cursor+1 < len(events) && events[cursor+1].Time <= t {
			cursor++
		}
		out = append(out, events[cursor].At(t))
	}

	return out, nil
}
