package normalize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "SN-000123", out: "SN-000123"},
		{name: "scanner suffix", in: "SN-000123\r\n", out: "SN-000123"},
		{name: "invalid utf8 dropped", in: string([]byte{0xff, 'S', 'N', 0x80}), out: "SN"},
		{name: "zero width removed", in: "SN\u200b-1", out: "SN-1"},
		{name: "fullwidth folded", in: "ＳＮ－１２", out: "SN-12"},
		{name: "nfkc ligature", in: "ﬁx", out: "fix"},
		{name: "surrounding space", in: "  ab  ", out: "ab"},
		{name: "empty", in: "", out: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.out {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestApplyCasing(t *testing.T) {
	cases := []struct {
		in   string
		c    Casing
		want string
	}{
		{"ab-12c", CasingUpper, "AB-12C"},
		{"AB-12C", CasingLower, "ab-12c"},
		{"Ab-12c", CasingNone, "Ab-12c"},
		{"Ab-12c", "", "Ab-12c"},
		{" mac:aa:bb\n", CasingUpper, "MAC:AA:BB"},
	}
	for _, c := range cases {
		if got := Apply(c.in, c.c); got != c.want {
			t.Fatalf("Apply(%q, %s) = %q, want %q", c.in, c.c, got, c.want)
		}
	}
}

func TestCasingValid(t *testing.T) {
	for _, c := range []Casing{"", CasingNone, CasingUpper, CasingLower} {
		if !c.Valid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if Casing("TITLE").Valid() {
		t.Fatalf("TITLE should be invalid")
	}
}
