package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/pbp-scores/internal/aggregate"
	"github.com/pfrederiksen/pbp-scores/internal/config"
	"github.com/pfrederiksen/pbp-scores/internal/event"
	"github.com/pfrederiksen/pbp-scores/internal/export"
	"github.com/pfrederiksen/pbp-scores/internal/logger"
	"github.com/pfrederiksen/pbp-scores/internal/metrics"
	"github.com/pfrederiksen/pbp-scores/internal/pbp"
	"github.com/pfrederiksen/pbp-scores/internal/schedule"
	"github.com/pfrederiksen/pbp-scores/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 2
)

// ErrPartial is returned when the run finished but skipped games or days
var ErrPartial = errors.New("some games or days were skipped")

var (
	flagConfig      string
	flagOutput      string
	flagFormat      string
	flagSort        string
	flagSummary     string
	flagMetricsFile string
	flagVerbose     bool
	flagRaw         bool
	flagWorkers     int
	flagStep        float64
	flagEnd         float64
	flagRound       int
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pbp-scores",
		Short: "Scrape basketball play-by-play pages into comparable score timelines",
		Long: `A CLI tool to scrape college basketball play-by-play pages.
Score changes are placed on a common game clock, optionally resampled onto a
fixed checkpoint grid, and exported as CSV or JSON for cross-game comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "YAML config file (default $PBP_CONFIG)")
	flags.StringVar(&flagOutput, "output", config.DefaultOutput, "Output file, or - for stdout")
	flags.StringVar(&flagFormat, "format", "csv", "Output format: csv or json")
	flags.StringVar(&flagSort, "sort", "page", "Row order: page, game, time or rank-diff")
	flags.StringVar(&flagSummary, "summary", "text", "Run summary format: text or json")
	flags.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	flags.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	flags.BoolVar(&flagRaw, "raw", false, "Export events at their actual times instead of resampling")
	flags.IntVar(&flagWorkers, "workers", 1, "Games fetched in parallel per day")
	flags.Float64Var(&flagStep, "step", 0.25, "Checkpoint spacing in minutes")
	flags.Float64Var(&flagEnd, "end", 40.75, "Last checkpoint in minutes")

	cmd.AddCommand(newGameCmd(), newDayCmd(), newTournamentCmd(), newCheckpointsCmd())

	return cmd
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game <playbyplay-url>...",
		Short: "Scrape one or more play-by-play pages",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGame,
	}
	cmd.Flags().IntVar(&flagRound, "round", 0, "Tournament round number (required)")
	cmd.MarkFlagRequired("round")
	return cmd
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day <scoreboard-url>",
		Short: "Scrape every game linked from a scoreboard page",
		Args:  cobra.ExactArgs(1),
		RunE:  runDay,
	}
	cmd.Flags().IntVar(&flagRound, "round", 0, "Tournament round number (required)")
	cmd.MarkFlagRequired("round")
	return cmd
}

func newTournamentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament",
		Short: "Scrape every day of the configured schedule",
		Args:  cobra.NoArgs,
		RunE:  runTournament,
	}
}

func newCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoints",
		Short: "Print the checkpoint grid, one time per line",
		Args:  cobra.NoArgs,
		RunE:  runCheckpoints,
	}
}

// loadConfig loads the layered config and lets explicitly set flags win
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = flagMetricsFile
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("step") {
		cfg.Checkpoints.Step = flagStep
	}
	if flags.Changed("end") {
		cfg.Checkpoints.End = flagEnd
	}
	if flagRaw {
		cfg.Checkpoints.Enabled = false
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run is everything a scraping command needs
type run struct {
	cfg      *config.Config
	started  time.Time
	metrics  *metrics.Recorder
	pipeline *aggregate.Pipeline
	sort     SortOrder
	summary  OutputFormat
}

func setup(cmd *cobra.Command) (*run, error) {
	sortOrder, err := ParseSortOrder(flagSort)
	if err != nil {
		return nil, err
	}
	summaryFormat := OutputFormat(strings.ToLower(flagSummary))
	if summaryFormat != FormatText && summaryFormat != FormatJSON {
		return nil, fmt.Errorf("invalid summary format: %s (must be 'text' or 'json')", flagSummary)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	var checkpoints []float64
	if cfg.Checkpoints.Enabled {
		checkpoints, err = pbp.Checkpoints(cfg.Checkpoints.Step, cfg.Checkpoints.End)
		if err != nil {
			return nil, err
		}
	}

	sc := scraper.New(scraper.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
	})
	rec := metrics.New()

	pipeline := aggregate.New(sc, aggregate.Options{
		Checkpoints: checkpoints,
		Workers:     cfg.Workers,
		Logger:      log,
		Metrics:     rec,
	})

	return &run{
		cfg:      cfg,
		started:  time.Now().UTC(),
		metrics:  rec,
		pipeline: pipeline,
		sort:     sortOrder,
		summary:  summaryFormat,
	}, nil
}

// finish sorts and exports the rows, flushes metrics and prints the summary
func (r *run) finish(cmd *cobra.Command, events []*event.GameEvent, summary *RunSummary) error {
	sortEvents(events, r.sort)

	exp, err := export.New(r.cfg.Output, export.Format(strings.ToLower(r.cfg.Format)),
		export.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("initializing export: %w", err)
	}
	if err := exp.Write(events); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			logger.Error("Failed to write metrics", logger.Fields{"path": r.cfg.MetricsFile}, err)
		}
	}

	summary.RunID = r.pipeline.RunID()
	summary.StartedAt = r.started
	summary.Duration = time.Since(r.started)
	summary.Raw = r.pipeline.Raw()
	summary.Records = len(events)
	summary.Output = exp.Path()
	summary.MetricsFile = r.cfg.MetricsFile

	if err := WriteSummary(cmd.ErrOrStderr(), summary, r.summary, flagVerbose); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if summary.Failed() {
		return ErrPartial
	}
	return nil
}

func runGame(cmd *cobra.Command, args []string) error {
	r, err := setup(cmd)
	if err != nil {
		return err
	}

	result, err := r.pipeline.ProcessGames(cmd.Context(), args, flagRound)
	if err != nil {
		return err
	}

	return r.finish(cmd, result.Events, &RunSummary{
		Games:       result.Games,
		GamesFailed: result.GamesFailed,
	})
}

func runDay(cmd *cobra.Command, args []string) error {
	r, err := setup(cmd)
	if err != nil {
		return err
	}

	result, err := r.pipeline.ProcessDay(cmd.Context(), args[0], flagRound)
	if err != nil {
		return err
	}

	return r.finish(cmd, result.Events, &RunSummary{
		Days:        1,
		Games:       result.Games,
		GamesFailed: result.GamesFailed,
	})
}

func runTournament(cmd *cobra.Command, args []string) error {
	r, err := setup(cmd)
	if err != nil {
		return err
	}

	days, err := schedule.Build(r.cfg.Schedule)
	if err != nil {
		return err
	}
	logger.Info("Starting tournament run", logger.Fields{
		"run_id": r.pipeline.RunID(),
		"days":   len(days),
	})

	result, err := r.pipeline.ProcessTournament(cmd.Context(), r.cfg.ScoreboardURL, days)
	if err != nil {
		return err
	}

	return r.finish(cmd, result.Events, &RunSummary{
		Days:        result.Days,
		DaysFailed:  result.DaysFailed,
		Games:       result.Games,
		GamesFailed: result.GamesFailed,
	})
}

func runCheckpoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	times, err := pbp.Checkpoints(cfg.Checkpoints.Step, cfg.Checkpoints.End)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, t := range times {
		fmt.Fprintln(w, strconv.FormatFloat(t, 'f', -1, 64))
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, ErrPartial):
		os.Exit(ExitPartial)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
