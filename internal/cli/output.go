package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the run summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunSummary describes a finished run
type RunSummary struct {
	RunID       string        `json:"run_id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
	Raw         bool          `json:"raw"`
	Days        int           `json:"days"`
	DaysFailed  int           `json:"days_failed"`
	Games       int           `json:"games"`
	GamesFailed int           `json:"games_failed"`
	Records     int           `json:"records"`
	Output      string        `json:"output"`
	MetricsFile string        `json:"metrics_file,omitempty"`
}

// Failed reports whether any day or game was skipped
func (s *RunSummary) Failed() bool {
	return s.DaysFailed > 0 || s.GamesFailed > 0
}

// WriteSummary writes the summary in the specified format
func WriteSummary(w io.Writer, summary *RunSummary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, summary *RunSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, summary *RunSummary, verbose bool) error {
	mode := "resampled"
	if summary.Raw {
		mode = "raw"
	}

	if summary.Days > 0 {
		fmt.Fprintf(w, "Days:    %d (%d failed)\n", summary.Days, summary.DaysFailed)
	}
	fmt.Fprintf(w, "Games:   %d (%d failed)\n", summary.Games, summary.GamesFailed)
	fmt.Fprintf(w, "Records: %d %s\n", summary.Records, mode)
	fmt.Fprintf(w, "Output:  %s\n", summary.Output)

	if verbose {
		fmt.Fprintf(w, "Run ID:  %s\n", summary.RunID)
		fmt.Fprintf(w, "Started: %s\n", summary.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Took:    %s\n", summary.Duration.Round(time.Millisecond))
		if summary.MetricsFile != "" {
			fmt.Fprintf(w, "Metrics: %s\n", summary.MetricsFile)
		}
	}

	if summary.Failed() {
		fmt.Fprintln(w, "\nSome games were skipped; see the log for details.")
	}

	return nil
}
