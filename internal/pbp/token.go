package pbp

import (
	"regexp"
	"strings"
)

// TokenKind classifies a play-by-play cell
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenScore
	TokenTimestamp
	TokenPeriodEnd
)

func (k TokenKind) String() string {
	switch k {
	case TokenScore:
		return "score"
	case TokenTimestamp:
		return "timestamp"
	case TokenPeriodEnd:
		return "period-end"
	default:
		return "other"
	}
}

var (
	scorePattern     = regexp.MustCompile(`^\d*-\d*$`)
	timestampPattern = regexp.MustCompile(`^\d*:\d*$`)
)

// PeriodEndMarker is the text ESPN puts in the row closing a half or an overtime
const PeriodEndMarker = "End of"

// Token is a classified cell. Away/Home are set for scores and
// Minutes/Seconds for timestamps.
type Token struct {
	Kind    TokenKind
	Raw     string
	Away    int
	Home    int
	Minutes int
	Seconds int
}

// Clock returns the countdown of a timestamp token in minutes
func (t Token) Clock() float64 {
	return clockMinutes(t.Minutes, t.Seconds)
}

// Classify recognizes a single cell. A cell that has the shape of a score or
// a timestamp but does not parse yields a *TokenFormatError.
func Classify(raw string) (Token, error) {
	text := strings.TrimSpace(raw)
	tok := Token{Kind: TokenOther, Raw: text}

	switch {
	case scorePattern.MatchString(text):
		tok.Kind = TokenScore
		away, home, err := splitScore(text)
		if err != nil {
			return tok, &TokenFormatError{Token: text, Kind: TokenScore, Err: err}
		}
		tok.Away, tok.Home = away, home

	case timestampPattern.MatchString(text):
		tok.Kind = TokenTimestamp
		minutes, seconds, err := splitClock(text)
		if err != nil {
			return tok, &TokenFormatError{Token: text, Kind: TokenTimestamp, Err: err}
		}
		tok.Minutes, tok.Seconds = minutes, seconds

	case strings.Contains(text, PeriodEndMarker):
		tok.Kind = TokenPeriodEnd
	}

	return tok, nil
}

// splitScore splits "away-home"
func splitScore(text string) (int, int, error) {
	awayText, homeText, _ := strings.Cut(text, "-")

	away, err := parseCount(awayText)
	if err != nil {
		return 0, 0, err
	}
	home, err := parseCount(homeText)
	if err != nil {
		return 0, 0, err
	}
	return away, home, nil
}
