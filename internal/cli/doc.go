// Package cli implements the command-line interface for pbp-scores.
//
// The cli package provides the Cobra-based CLI with commands to scrape a
// single game, one scoreboard day or a whole tournament schedule, plus a
// helper that prints the checkpoint grid. It loads configuration, wires the
// scraper, aggregation pipeline, metrics and exporter together, sorts the
// resulting rows and prints a run summary to stderr.
package cli
