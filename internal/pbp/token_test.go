package pbp

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind TokenKind
		wantErr  bool
		check    func(*testing.T, Token)
	}{
		{
			raw:      "2-0",
			wantKind: TokenScore,
			check: func(t *testing.T, tok Token) {
				if tok.Away != 2 || tok.Home != 0 {
					t.Errorf("score = %d-%d, want 2-0", tok.Away, tok.Home)
				}
			},
		},
		{
			raw:      " 101-98 ",
			wantKind: TokenScore,
			check: func(t *testing.T, tok Token) {
				if tok.Away != 101 || tok.Home != 98 {
					t.Errorf("score = %d-%d, want 101-98", tok.Away, tok.Home)
				}
				if tok.Raw != "101-98" {
					t.Errorf("Raw = %q, want trimmed text", tok.Raw)
				}
			},
		},
		{
			raw:      "18:30",
			wantKind: TokenTimestamp,
			check: func(t *testing.T, tok Token) {
				if tok.Minutes != 18 || tok.Seconds != 30 {
					t.Errorf("clock = %d:%d, want 18:30", tok.Minutes, tok.Seconds)
				}
				if tok.Clock() != 18.5 {
					t.Errorf("Clock() = %v, want 18.5", tok.Clock())
				}
			},
		},
		{raw: "End of 1st Half", wantKind: TokenPeriodEnd},
		{raw: "End of the 2nd Half", wantKind: TokenPeriodEnd},
		{raw: "Game Over: End of 1st OT", wantKind: TokenPeriodEnd},
		{raw: "Jumper made by Smith", wantKind: TokenOther},
		{raw: "3-pt jumper", wantKind: TokenOther},
		{raw: "12:34:56", wantKind: TokenOther},
		{raw: "", wantKind: TokenOther},
		{raw: "-", wantKind: TokenScore, wantErr: true},
		{raw: "12-", wantKind: TokenScore, wantErr: true},
		{raw: ":", wantKind: TokenTimestamp, wantErr: true},
		{raw: "5:", wantKind: TokenTimestamp, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tok, err := Classify(tt.raw)
			if tok.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.raw, tok.Kind, tt.wantKind)
			}
			if tt.wantErr {
				var tfe *TokenFormatError
				if !errors.As(err, &tfe) {
					t.Fatalf("Classify(%q) error = %v, want *TokenFormatError", tt.raw, err)
				}
				if tfe.Kind != tt.wantKind {
					t.Errorf("TokenFormatError.Kind = %v, want %v", tfe.Kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify(%q) unexpected error: %v", tt.raw, err)
			}
			if tt.check != nil {
				tt.check(t, tok)
			}
		})
	}
}

func TestClassify_TimestampWrapsClockError(t *testing.T) {
	_, err := Classify("5:")

	var mce *MalformedClockError
	if !errors.As(err, &mce) {
		t.Errorf("Classify(\"5:\") error = %v, want wrapped *MalformedClockError", err)
	}
}

func TestTokenKind_String(t *testing.T) {
	kinds := map[TokenKind]string{
		TokenOther:     "other",
		TokenScore:     "score",
		TokenTimestamp: "timestamp",
		TokenPeriodEnd: "period-end",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}
}
