package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " caseline-api ")
	lc := New().Prefix("LOG_")

	tests := []struct {
		name string
		key  string
		def  string
		want string
	}{
		{name: "prefixed hit", key: "SERVICE", def: "x", want: "caseline-api"},
		{name: "missing returns default", key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lc.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_T1", "YES")
	t.Setenv("LOG_T2", " 1 ")
	t.Setenv("LOG_F1", "no")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"F1", true, false},
		{"UNSET", true, true},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_N", "12")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_JUNK", "1x")

	if got := c.GetInt("N", 0); got != 12 {
		t.Fatalf("GetInt = %d, want 12", got)
	}
	if got := c.GetInt("NEG", 5); got != 5 {
		t.Fatalf("GetInt negative = %d, want default", got)
	}
	if got := c.GetInt("JUNK", 7); got != 7 {
		t.Fatalf("GetInt junk = %d, want default", got)
	}
	if got := c.GetInt("UNSET", 4); got != 4 {
		t.Fatalf("GetInt unset = %d, want default", got)
	}
}
