// Package scraper provides HTTP fetching and HTML parsing for ESPN basketball pages.
//
// The scraper package fetches scoreboard pages to discover play-by-play links and
// fetches play-by-play pages to read the two teams, their poll rankings and the
// text of every table row. Row text is handed to the pbp package untouched apart
// from whitespace trimming; recognizing scores and clocks is not done here.
package scraper
