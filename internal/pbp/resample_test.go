package pbp

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pfrederiksen/pbp-scores/internal/event"
)

func scoreLine(events []*event.GameEvent) [][2]int {
	line := make([][2]int, len(events))
	for i, e := range events {
		line[i] = [2]int{e.AwayScore, e.HomeScore}
	}
	return line
}

func TestResample(t *testing.T) {
	Convey("Given an extracted game", t, func() {
		identity := rankedIdentity
		events := []*event.GameEvent{
			event.NewGameEvent(identity, 2, 1.5, 2, 0),
			event.NewGameEvent(identity, 2, 20+1.0/6, 2, 3),
		}

		Convey("When it is seeded and resampled", func() {
			seeded := Seed(identity, 2, events)
			out, err := Resample(seeded, []float64{0, 1, 2, 25})

			Convey("Then checkpoints before the first basket read 0-0", func() {
				So(err, ShouldBeNil)
				So(scoreLine(out), ShouldResemble, [][2]int{{0, 0}, {0, 0}, {2, 0}, {2, 3}})
			})

			Convey("Then every output carries its checkpoint time", func() {
				So(len(out), ShouldEqual, 4)
				for i, want := range []float64{0, 1, 2, 25} {
					So(out[i].Time, ShouldEqual, want)
				}
			})

			Convey("Then the inputs are not modified", func() {
				So(events[0].Time, ShouldEqual, 1.5)
				So(seeded[0].Time, ShouldEqual, 0)
				So(len(events), ShouldEqual, 2)
			})
		})

		Convey("When it is resampled without seeding", func() {
			out, err := Resample(events, []float64{0, 1.5, 10, 40, 40.75})

			Convey("Then early checkpoints get the first event", func() {
				So(err, ShouldBeNil)
				So(scoreLine(out), ShouldResemble, [][2]int{{2, 0}, {2, 0}, {2, 0}, {2, 3}, {2, 3}})
			})
		})

		Convey("When there are no checkpoints", func() {
			out, err := Resample(events, nil)

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})

	Convey("Given events that share a timestamp", t, func() {
		events := []*event.GameEvent{
			event.NewGameEvent(rankedIdentity, 1, 5, 2, 0),
			event.NewGameEvent(rankedIdentity, 1, 5, 3, 0),
			event.NewGameEvent(rankedIdentity, 1, 6, 3, 2),
		}

		Convey("When a checkpoint lands exactly on that time", func() {
			out, err := Resample(events, []float64{4, 5, 5.5, 6})

			Convey("Then the last event at that time is delivered", func() {
				So(err, ShouldBeNil)
				So(scoreLine(out), ShouldResemble, [][2]int{{2, 0}, {3, 0}, {3, 0}, {3, 2}})
			})
		})
	})

	Convey("Given an empty event sequence", t, func() {
		Convey("When it is resampled", func() {
			_, err := Resample(nil, []float64{0, 1})

			Convey("Then it fails fast", func() {
				So(err, ShouldEqual, ErrEmptyEvents)
			})
		})
	})

	Convey("Given an already uniform sequence", t, func() {
		grid, err := Checkpoints(0.5, 3)
		So(err, ShouldBeNil)

		uniform := make([]*event.GameEvent, len(grid))
		for i, at := range grid {
			uniform[i] = event.NewGameEvent(rankedIdentity, 1, at, i, 2*i)
		}

		Convey("When it is resampled onto its own grid", func() {
			out, err := Resample(uniform, grid)

			Convey("Then the scores are unchanged", func() {
				So(err, ShouldBeNil)
				So(scoreLine(out), ShouldResemble, scoreLine(uniform))
			})
		})
	})
}

func TestSeed(t *testing.T) {
	Convey("Given a game with no events", t, func() {
		seeded := Seed(rankedIdentity, 4, nil)

		Convey("Then a single 0-0 event at tip-off is produced", func() {
			So(len(seeded), ShouldEqual, 1)
			So(seeded[0].Time, ShouldEqual, 0)
			So(seeded[0].AwayScore, ShouldEqual, 0)
			So(seeded[0].HomeScore, ShouldEqual, 0)
			So(seeded[0].GameID, ShouldEqual, "A-B")
			So(seeded[0].RoundNum, ShouldEqual, 4)
		})
	})

	Convey("Given a game whose first event is at tip-off", t, func() {
		events := []*event.GameEvent{event.NewGameEvent(rankedIdentity, 1, 0, 0, 1)}
		seeded := Seed(rankedIdentity, 1, events)

		Convey("Then nothing is prepended", func() {
			So(len(seeded), ShouldEqual, 1)
			So(seeded[0], ShouldPointTo, events[0])
		})
	})
}

func TestCheckpoints(t *testing.T) {
	Convey("Given the quarter-minute grid of a regulation game", t, func() {
		grid, err := Checkpoints(0.25, 40.75)

		Convey("Then it has 164 points from 0 to 40.75", func() {
			So(err, ShouldBeNil)
			So(len(grid), ShouldEqual, 164)
			So(grid[0], ShouldEqual, 0)
			So(grid[1], ShouldEqual, 0.25)
			So(grid[163], ShouldEqual, 40.75)
		})
	})

	Convey("Given an end that is not a multiple of the step", t, func() {
		grid, err := Checkpoints(1, 2.5)

		Convey("Then the grid stops below the end", func() {
			So(err, ShouldBeNil)
			So(grid, ShouldResemble, []float64{0, 1, 2})
		})
	})

	Convey("Given a zero end", t, func() {
		grid, err := Checkpoints(0.25, 0)

		Convey("Then only tip-off is returned", func() {
			So(err, ShouldBeNil)
			So(grid, ShouldResemble, []float64{0})
		})
	})

	Convey("Given invalid bounds", t, func() {
		_, errStep := Checkpoints(0, 40)
		_, errNeg := Checkpoints(-1, 40)
		_, errEnd := Checkpoints(1, -5)
		_, errTiny := Checkpoints(1e-15, 40)
		_, errLong := Checkpoints(1, MaxCheckpoints)

		Convey("Then each is rejected", func() {
			So(errStep, ShouldNotBeNil)
			So(errNeg, ShouldNotBeNil)
			So(errEnd, ShouldNotBeNil)
			So(errTiny, ShouldNotBeNil)
			So(errLong, ShouldNotBeNil)
		})
	})

	Convey("Given a grid exactly at the limit", t, func() {
		grid, err := Checkpoints(1, MaxCheckpoints-1)

		Convey("Then it is accepted", func() {
			So(err, ShouldBeNil)
			So(len(grid), ShouldEqual, MaxCheckpoints)
		})
	})
}
