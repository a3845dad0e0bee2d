package idtemplate

import (
	"strings"
	"time"
)

// Result pairs the input of an expansion pass with its output
type Result struct {
	Previous string
	Next     string
}

// Changed reports whether the pass altered the string
func (r Result) Changed() bool { return r.Previous != r.Next }

// ExpandDates overwrites every date-token span of target with its value at now
func (t Template) ExpandDates(target string, now time.Time) Result {
	return t.rewrite(target, func(s Segment, cur string) string {
		if s.Kind == Date {
			return s.Token.Format(now)
		}
		return cur
	})
}

// IncrementRuns advances every run of target independently: the digits in the
// run's span become 1 when reset, otherwise their value plus one. Spans that
// hold anything but digits count as 0. Values are zero-padded to the run width
// and widen past it instead of truncating. Runs have no upper bound
func (t Template) IncrementRuns(target string, reset bool) Result {
	return t.rewrite(target, func(s Segment, cur string) string {
		if s.Kind != Run {
			return cur
		}
		if reset {
			return pad("1", s.Width)
		}
		return pad(increment(cur), s.Width)
	})
}

// Next derives the identifier that follows previous. previous may be the raw
// pattern, which yields the first identifier
func (t Template) Next(previous string, now time.Time) string {
	dated := t.ExpandDates(previous, now)
	return t.IncrementRuns(dated.Next, dated.Changed()).Next
}

// First returns the first identifier for now
func (t Template) First(now time.Time) string { return t.Next(t.pattern, now) }

// Preview returns n consecutive identifiers starting from previous
func (t Template) Preview(previous string, now time.Time, n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		previous = t.Next(previous, now)
		out = append(out, previous)
	}
	return out
}

func (t Template) rewrite(target string, fn func(s Segment, cur string) string) Result {
	spans, end := t.align(target)
	var b strings.Builder
	b.Grow(len(target) + 4)
	for i, s := range t.segs {
		b.WriteString(fn(s, target[spans[i].lo:spans[i].hi]))
	}
	b.WriteString(target[end:])
	return Result{Previous: target, Next: b.String()}
}

// increment adds one to the decimal digits in n, treating an empty or non-digit
// span as 0. Leading zeros are dropped
func increment(n string) string {
	if !allDigits(n) {
		return "1"
	}
	d := []byte(strings.TrimLeft(n, "0"))
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return string(d)
		}
		d[i] = '0'
	}
	return "1" + string(d)
}

func pad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

// ExpandDateTokens is ExpandDates for a pattern that has not been parsed
func ExpandDateTokens(target, pattern string, now time.Time) Result {
	return Parse(pattern).ExpandDates(target, now)
}

// IncrementRun is IncrementRuns for a pattern that has not been parsed
func IncrementRun(target, pattern string, reset bool) Result {
	return Parse(pattern).IncrementRuns(target, reset)
}

// NextIdentifier returns the identifier following previousOrPattern at now
func NextIdentifier(previousOrPattern, pattern string, now time.Time) string {
	return Parse(pattern).Next(previousOrPattern, now)
}
