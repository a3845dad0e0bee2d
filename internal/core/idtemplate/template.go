// Package idtemplate expands identifier patterns such as "CASE-YYMMDD-###".
//
// A pattern is tokenized once into literal text, date tokens (YYYY, YY, MM, DD,
// hh, mm, ss) and runs of '#'. Expansion then works on an earlier identifier:
// date tokens are overwritten with the current time, and each run is an
// independent zero-padded counter that increments, or restarts at 1 when the
// date portion changed. Nothing here reads the wall clock; callers pass now.
package idtemplate

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a segment
type Kind uint8

const (
	// Literal text is copied through unchanged
	Literal Kind = iota
	// Date is a date or time token
	Date
	// Run is a maximal span of '#'
	Run
)

func (k Kind) String() string {
	switch k {
	case Date:
		return "date"
	case Run:
		return "run"
	default:
		return "literal"
	}
}

// DateToken names a date component
type DateToken uint8

// Date tokens, named by the component they render
const (
	Year4 DateToken = iota + 1
	Year2
	Month
	Day
	Hour
	Minute
	Second
)

// matched in order; YYYY must precede YY
var dateTokens = [...]struct {
	text string
	tok  DateToken
}{
	{"YYYY", Year4},
	{"YY", Year2},
	{"MM", Month},
	{"DD", Day},
	{"hh", Hour},
	{"mm", Minute},
	{"ss", Second},
}

func (d DateToken) String() string {
	for _, dt := range dateTokens {
		if dt.tok == d {
			return dt.text
		}
	}
	return "?"
}

// Format renders the component of t the token stands for
func (d DateToken) Format(t time.Time) string {
	switch d {
	case Year4:
		return fmt.Sprintf("%04d", t.Year())
	case Year2:
		return fmt.Sprintf("%02d", t.Year()%100)
	case Month:
		return fmt.Sprintf("%02d", int(t.Month()))
	case Day:
		return fmt.Sprintf("%02d", t.Day())
	case Hour:
		return fmt.Sprintf("%02d", t.Hour())
	case Minute:
		return fmt.Sprintf("%02d", t.Minute())
	case Second:
		return fmt.Sprintf("%02d", t.Second())
	}
	return ""
}

// Segment is one token of a parsed pattern
type Segment struct {
	Kind  Kind
	Text  string // pattern text covered by the segment
	Token DateToken
	Width int // bytes of pattern covered
}

// Template is a parsed pattern; it is immutable and safe to share
type Template struct {
	pattern string
	segs    []Segment
	runs    int
	dates   int
}

// Parse tokenizes pattern. Every input is a valid pattern: anything that is
// not a date token or a '#' run is literal, including a lone 'Y'
func Parse(pattern string) Template {
	t := Template{pattern: pattern}
	litStart := -1
	flush := func(end int) {
		if litStart >= 0 {
			t.segs = append(t.segs, Segment{Kind: Literal, Text: pattern[litStart:end], Width: end - litStart})
			litStart = -1
		}
	}

	for i := 0; i < len(pattern); {
		if pattern[i] == '#' {
			flush(i)
			j := i
			for j < len(pattern) && pattern[j] == '#' {
				j++
			}
			t.segs = append(t.segs, Segment{Kind: Run, Text: pattern[i:j], Width: j - i})
			t.runs++
			i = j
			continue
		}
		if tok, n := matchDate(pattern[i:]); n > 0 {
			flush(i)
			t.segs = append(t.segs, Segment{Kind: Date, Text: pattern[i : i+n], Token: tok, Width: n})
			t.dates++
			i += n
			continue
		}
		if litStart < 0 {
			litStart = i
		}
		i++
	}
	flush(len(pattern))
	return t
}

func matchDate(s string) (DateToken, int) {
	for _, dt := range dateTokens {
		if strings.HasPrefix(s, dt.text) {
			return dt.tok, len(dt.text)
		}
	}
	return 0, 0
}

// Pattern returns the source pattern
func (t Template) Pattern() string { return t.pattern }

// Segments returns a copy of the parsed segments
func (t Template) Segments() []Segment { return append([]Segment(nil), t.segs...) }

// HasRuns reports whether the pattern has a counter
func (t Template) HasRuns() bool { return t.runs > 0 }

// HasDates reports whether the pattern has a date token
func (t Template) HasDates() bool { return t.dates > 0 }

// span is a byte range of a target string
type span struct{ lo, hi int }

// align maps every segment onto target by position. When target is longer
// than the pattern the surplus is given to runs, so a counter that already
// outgrew its width ("1000" in a "###" run) keeps all of its digits. If the
// literals and digit spans admit more than one split, later runs take the
// surplus: "0924100" under "##YY##" reads 09, 24, 100. A target no split fits
// falls back to giving the surplus to the first run followed by digits. Spans
// past the end of a short target are clamped
func (t Template) align(target string) ([]span, int) {
	extra := len(target) - len(t.pattern)
	if extra > 0 && t.runs > 0 {
		spans := make([]span, len(t.segs))
		if t.fit(target, 0, 0, extra, spans) {
			return spans, len(target)
		}
	}
	return t.alignGreedy(target, extra)
}

// fit assigns segments i.. starting at pos so that the runs absorb exactly
// extra surplus bytes and the target is consumed. Earlier runs try the
// narrowest width first
func (t Template) fit(target string, i, pos, extra int, spans []span) bool {
	if i == len(t.segs) {
		return extra == 0 && pos == len(target)
	}
	s := t.segs[i]
	grow := 0
	if s.Kind == Run {
		grow = extra
	}
	for e := 0; e <= grow; e++ {
		hi := pos + s.Width + e
		if hi > len(target) {
			return false
		}
		part := target[pos:hi]
		switch s.Kind {
		case Literal:
			if part != s.Text {
				return false
			}
		default:
			if !allDigits(part) {
				return false
			}
		}
		spans[i] = span{lo: pos, hi: hi}
		if t.fit(target, i+1, hi, extra-e, spans) {
			return true
		}
	}
	return false
}

func (t Template) alignGreedy(target string, extra int) ([]span, int) {
	spans := make([]span, len(t.segs))
	pos := 0
	for i, s := range t.segs {
		w := s.Width
		if s.Kind == Run {
			for extra > 0 && pos+w < len(target) && isDigit(target[pos+w]) {
				w++
				extra--
			}
		}
		spans[i] = span{lo: min(pos, len(target)), hi: min(pos+w, len(target))}
		pos += w
	}
	return spans, min(pos, len(target))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
