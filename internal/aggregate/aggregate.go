package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/pbp-scores/internal/event"
	"github.com/pfrederiksen/pbp-scores/internal/logger"
	"github.com/pfrederiksen/pbp-scores/internal/metrics"
	"github.com/pfrederiksen/pbp-scores/internal/pbp"
	"github.com/pfrederiksen/pbp-scores/internal/schedule"
	"github.com/pfrederiksen/pbp-scores/internal/scraper"
)

// Source fetches parsed pages. *scraper.Scraper implements it.
type Source interface {
	FetchGame(ctx context.Context, gameURL string) (*scraper.Game, error)
	FetchGameURLs(ctx context.Context, scoreboardURL string) ([]string, error)
}

// Options configures a Pipeline
type Options struct {
	// Checkpoints is the resampling grid. Nil selects raw mode: events are
	// returned at the time they happened.
	Checkpoints []float64

	// Workers bounds the games fetched concurrently within a day. Values
	// below 1 mean 1.
	Workers int

	// RunID tags every log line. A random one is generated when empty.
	RunID string

	Logger  *logger.Logger
	Metrics *metrics.Recorder
}

// Pipeline turns play-by-play pages into rows
type Pipeline struct {
	source      Source
	checkpoints []float64
	workers     int
	runID       string
	log         *logger.Logger
	metrics     *metrics.Recorder
}

// DayResult is the outcome of one scoreboard day
type DayResult struct {
	Events      []*event.GameEvent
	Games       int
	GamesFailed int
}

// Result is the outcome of a tournament run
type Result struct {
	RunID       string
	Events      []*event.GameEvent
	Days        int
	DaysFailed  int
	Games       int
	GamesFailed int
}

// New creates a Pipeline reading from source
func New(source Source, opts Options) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	return &Pipeline{
		source:      source,
		checkpoints: opts.Checkpoints,
		workers:     opts.Workers,
		runID:       opts.RunID,
		log:         opts.Logger.With(logger.Fields{"run_id": opts.RunID}),
		metrics:     opts.Metrics,
	}
}

// RunID returns the ID stamped on the pipeline's log lines
func (p *Pipeline) RunID() string {
	return p.runID
}

// Raw reports whether the pipeline skips resampling
func (p *Pipeline) Raw() bool {
	return p.checkpoints == nil
}

// ProcessGame fetches one play-by-play page and returns its rows
func (p *Pipeline) ProcessGame(ctx context.Context, gameURL string, roundNum int) ([]*event.GameEvent, error) {
	start := time.Now()
	game, err := p.source.FetchGame(ctx, gameURL)
	p.metrics.ObserveFetch(metrics.PagePlayByPlay, time.Since(start))
	if err != nil {
		return nil, err
	}

	extraction := pbp.Extract(game.Identity, roundNum, game.Rows)
	p.metrics.EventsExtracted(len(extraction.Events))
	for _, skipped := range extraction.Skipped {
		p.metrics.TokenRejected(skipped.Kind.String())
		p.log.Debug("Cell skipped", logger.Fields{
			"game_id": game.Identity.GameID(),
			"token":   skipped.Token,
			"kind":    skipped.Kind.String(),
			"reason":  skipped.Err.Error(),
		})
	}

	overtimes := extraction.Periods - pbp.RegulationPeriods
	if overtimes < 0 {
		overtimes = 0
	}
	p.log.Debug("Game extracted", logger.Fields{
		"game_id":   game.Identity.GameID(),
		"events":    len(extraction.Events),
		"skipped":   len(extraction.Skipped),
		"periods":   extraction.Periods,
		"overtimes": overtimes,
	})

	if p.Raw() {
		return extraction.Events, nil
	}

	seeded := pbp.Seed(game.Identity, roundNum, extraction.Events)
	return pbp.Resample(seeded, p.checkpoints)
}

// ProcessGames processes gameURLs and concatenates their rows in the given
// order. Failed games are logged and left out.
func (p *Pipeline) ProcessGames(ctx context.Context, gameURLs []string, roundNum int) (*DayResult, error) {
	perGame := make([][]*event.GameEvent, len(gameURLs))
	failed := make([]bool, len(gameURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, gameURL := range gameURLs {
		g.Go(func() error {
			events, err := p.ProcessGame(gctx, gameURL, roundNum)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed[i] = true
				p.metrics.GameProcessed(metrics.StatusFailed)
				p.log.Error("Skipping game", logger.Fields{
					"url":   gameURL,
					"round": roundNum,
				}, err)
				return nil
			}

			perGame[i] = events
			p.metrics.GameProcessed(metrics.StatusOK)
			p.metrics.RecordsEmitted(len(events))
			p.log.Debug("Game processed", logger.Fields{
				"url":     gameURL,
				"round":   roundNum,
				"records": len(events),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &DayResult{
		Events: make([]*event.GameEvent, 0),
		Games:  len(gameURLs),
	}
	for i, events := range perGame {
		if failed[i] {
			result.GamesFailed++
			continue
		}
		result.Events = append(result.Events, events...)
	}

	return result, nil
}

// ProcessDay discovers the games on a scoreboard page and processes them
func (p *Pipeline) ProcessDay(ctx context.Context, scoreboardURL string, roundNum int) (*DayResult, error) {
	start := time.Now()
	gameURLs, err := p.source.FetchGameURLs(ctx, scoreboardURL)
	p.metrics.ObserveFetch(metrics.PageScoreboard, time.Since(start))
	if err != nil {
		p.metrics.DayProcessed(metrics.StatusFailed)
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	p.log.Info("Scoreboard fetched", logger.Fields{
		"url":   scoreboardURL,
		"round": roundNum,
		"games": len(gameURLs),
	})

	result, err := p.ProcessGames(ctx, gameURLs, roundNum)
	if err != nil {
		p.metrics.DayProcessed(metrics.StatusFailed)
		return nil, err
	}

	p.metrics.DayProcessed(metrics.StatusOK)
	return result, nil
}

// ProcessTournament processes every scheduled day in order. A day that fails
// is counted in the result; only cancellation stops the run early.
func (p *Pipeline) ProcessTournament(ctx context.Context, scoreboardBase string, days []schedule.Day) (*Result, error) {
	result := &Result{
		RunID:  p.runID,
		Events: make([]*event.GameEvent, 0),
	}

	for _, day := range days {
		fields := logger.Fields{
			"date":  schedule.FormatDate(day.Date),
			"round": day.Round,
		}

		dayURL, err := schedule.ScoreboardURL(scoreboardBase, day.Date)
		if err != nil {
			return result, err
		}

		result.Days++
		dayResult, err := p.ProcessDay(ctx, dayURL, day.Round)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.DaysFailed++
			p.log.Error("Day failed", fields, err)
			continue
		}

		result.Games += dayResult.Games
		result.GamesFailed += dayResult.GamesFailed
		result.Events = append(result.Events, dayResult.Events...)

		fields["games"] = dayResult.Games
		fields["records"] = len(dayResult.Events)
		p.log.Info("Day processed", fields)
	}

	return result, nil
}
