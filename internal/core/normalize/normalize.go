// Package normalize cleans scanned or typed unit identifiers before they are
// validated and stored.
//
// Pipeline order
// 1 drop invalid UTF-8
// 2 drop control and format characters (scanner CR/LF suffixes, zero-widths)
// 3 NFKC
// 4 fold fullwidth forms to ASCII
// 5 trim surrounding space
// 6 optional casing per unit schema
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Casing is the transform a unit schema applies to values
type Casing string

const (
	// CasingNone keeps the value as entered
	CasingNone Casing = "NONE"
	// CasingUpper uppercases the value
	CasingUpper Casing = "UPPERCASE"
	// CasingLower lowercases the value
	CasingLower Casing = "LOWERCASE"
)

// Valid reports whether c is a known casing; empty counts as NONE
func (c Casing) Valid() bool {
	switch c {
	case "", CasingNone, CasingUpper, CasingLower:
		return true
	}
	return false
}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.Predicate(unicode.IsControl)),
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFKC,
			width.Fold,
		)
	},
}

// Clean runs steps 1 to 5
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// Apply cleans s and then applies casing
func Apply(s string, c Casing) string {
	s = Clean(s)
	switch c {
	case CasingUpper:
		return cases.Upper(language.Und).String(s)
	case CasingLower:
		return cases.Lower(language.Und).String(s)
	default:
		return s
	}
}
