package idtemplate

import (
	"testing"
)

func TestParseSegments(t *testing.T) {
	tpl := Parse("CASE-YYYYMMDD-###")
	want := []Segment{
		{Kind: Literal, Text: "CASE-", Width: 5},
		{Kind: Date, Text: "YYYY", Token: Year4, Width: 4},
		{Kind: Date, Text: "MM", Token: Month, Width: 2},
		{Kind: Date, Text: "DD", Token: Day, Width: 2},
		{Kind: Literal, Text: "-", Width: 1},
		{Kind: Run, Text: "###", Width: 3},
	}
	got := tpl.Segments()
	if len(got) != len(want) {
		t.Fatalf("segments = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !tpl.HasRuns() || !tpl.HasDates() || tpl.Pattern() != "CASE-YYYYMMDD-###" {
		t.Fatalf("flags wrong for %q", tpl.Pattern())
	}
}

func TestParseTokenRules(t *testing.T) {
	cases := []struct {
		pattern string
		kinds   []Kind
		texts   []string
	}{
		{"YYY", []Kind{Date, Literal}, []string{"YY", "Y"}},
		{"YYYYY", []Kind{Date, Literal}, []string{"YYYY", "Y"}},
		{"MMmm", []Kind{Date, Date}, []string{"MM", "mm"}},
		{"yyyy", []Kind{Literal}, []string{"yyyy"}},
		{"Y-M-D", []Kind{Literal}, []string{"Y-M-D"}},
		{"#A##", []Kind{Run, Literal, Run}, []string{"#", "A", "##"}},
		{"hh:mm:ss", []Kind{Date, Literal, Date, Literal, Date}, []string{"hh", ":", "mm", ":", "ss"}},
		{"", nil, nil},
	}
	for _, c := range cases {
		got := Parse(c.pattern).Segments()
		if len(got) != len(c.kinds) {
			t.Fatalf("Parse(%q) = %+v", c.pattern, got)
		}
		for i := range got {
			if got[i].Kind != c.kinds[i] || got[i].Text != c.texts[i] {
				t.Fatalf("Parse(%q)[%d] = %s %q, want %s %q", c.pattern, i, got[i].Kind, got[i].Text, c.kinds[i], c.texts[i])
			}
		}
	}
}

func TestParseNonASCIILiterals(t *testing.T) {
	got := Parse("Kärton-##").Segments()
	if len(got) != 2 || got[0].Text != "Kärton-" || got[1].Width != 2 {
		t.Fatalf("segments = %+v", got)
	}
}

func TestDateTokenString(t *testing.T) {
	if Year2.String() != "YY" || Minute.String() != "mm" || DateToken(0).String() != "?" {
		t.Fatalf("token names wrong")
	}
}
