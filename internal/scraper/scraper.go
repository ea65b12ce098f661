package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/pbp-scores/internal/event"
	"github.com/pfrederiksen/pbp-scores/internal/pbp"
)

const (
	UserAgent = "pbp-scores/1.0 (github.com/pfrederiksen/pbp-scores)"
	Timeout   = 30 * time.Second
	Retries   = 3
)

// Options tunes a Scraper. Zero values fall back to the package defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Retries   int
}

// Scraper handles fetching and parsing ESPN scoreboard and play-by-play pages
type Scraper struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   func() backoff.BackOff
}

// Game is the parsed content of one play-by-play page
type Game struct {
	URL      string
	Identity event.TeamIdentity
	Rows     []pbp.Row
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	return &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: opts.UserAgent,
		retries:   opts.Retries,
		backoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// FetchGame fetches a play-by-play page and parses teams, ranks and rows
func (s *Scraper) FetchGame(ctx context.Context, gameURL string) (*Game, error) {
	doc, err := s.fetchDocument(ctx, gameURL)
	if err != nil {
		return nil, err
	}

	identity, err := parseIdentity(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", gameURL, err)
	}

	return &Game{
		URL:      gameURL,
		Identity: identity,
		Rows:     parseRows(doc),
	}, nil
}

// FetchGameURLs fetches a scoreboard page and returns the absolute URLs of
// its play-by-play links, in page order without duplicates
func (s *Scraper) FetchGameURLs(ctx context.Context, scoreboardURL string) ([]string, error) {
	base, err := url.Parse(scoreboardURL)
	if err != nil {
		return nil, fmt.Errorf("parsing scoreboard URL: %w", err)
	}

	doc, err := s.fetchDocument(ctx, scoreboardURL)
	if err != nil {
		return nil, err
	}

	return parseGameURLs(doc, base), nil
}

// fetchDocument GETs a page, retrying network errors, 429 and 5xx responses
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	operation := func() error {
		d, err := s.get(ctx, pageURL)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && !se.Temporary() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		doc = d
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.backoff(), uint64(s.retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	return doc, nil
}

func (s *Scraper) get(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	return parseDocument(resp.Body)
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// parseIdentity reads team names from the linescore table and ranks from the
// teamRank cells
func parseIdentity(doc *goquery.Document) (event.TeamIdentity, error) {
	var names []string
	doc.Find("table.linescore a").Each(func(i int, sel *goquery.Selection) {
		names = append(names, strings.TrimSpace(sel.Text()))
	})
	if len(names) != 2 {
		return event.TeamIdentity{}, fmt.Errorf("%w: found %d", ErrMissingTeams, len(names))
	}

	awayRank, homeRank, err := parseRanks(doc)
	if err != nil {
		return event.TeamIdentity{}, err
	}

	return event.TeamIdentity{
		Away:     names[0],
		AwayRank: awayRank,
		Home:     names[1],
		HomeRank: homeRank,
	}, nil
}

// parseRanks returns (away, home) ranks. The first rank cell on ESPN pages is
// a blank header, so empty cells are ignored.
func parseRanks(doc *goquery.Document) (int, int, error) {
	var found []string
	doc.Find("td.teamRank").Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			found = append(found, text)
		}
	})

	switch len(found) {
	case 0:
		return event.Unranked, event.Unranked, nil
	case 2:
	default:
		return 0, 0, &MissingRankError{Found: found}
	}

	ranks := make([]int, 2)
	for i, text := range found {
		n, err := strconv.Atoi(strings.TrimPrefix(text, "#"))
		if err != nil || n < 1 {
			if err == nil {
				err = fmt.Errorf("rank %d is not positive", n)
			}
			return 0, 0, &MissingRankError{Found: found, Err: err}
		}
		ranks[i] = n
	}

	return ranks[0], ranks[1], nil
}

// parseRows returns the trimmed text of every td of every tr, in page order.
// Rows without td cells (headers) are dropped.
func parseRows(doc *goquery.Document) []pbp.Row {
	rows := make([]pbp.Row, 0)

	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		row := make(pbp.Row, 0, cells.Length())
		cells.Each(func(j int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, row)
	})

	return rows
}

// hyphenReplacer folds the hyphen variants ESPN uses in link labels
var hyphenReplacer = strings.NewReplacer("\u2011", "-", "\u2010", "-", "\u2013", "-")

// isPlayByPlayLink reports whether an anchor text reads "Play-By-Play"
func isPlayByPlayLink(text string) bool {
	text = strings.ToLower(hyphenReplacer.Replace(text))
	return strings.Contains(text, "play-by-play")
}

// parseGameURLs collects play-by-play links resolved against base
func parseGameURLs(doc *goquery.Document, base *url.URL) []string {
	urls := make([]string, 0)
	seen := make(map[string]bool)

	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		if !isPlayByPlayLink(sel.Text()) {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		abs := base.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			urls = append(urls, abs)
		}
	})

	return urls
}
