package handler

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimeLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-15T10:30:00Z", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15T10:30:00", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15T10:30", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := parseTime(c.in)
		if err != nil {
			t.Errorf("parseTime(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("parseTime(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "15/03/2026", "2026-03-15T10:30:00+bad"} {
		_, err := parseTime(in)
		if err == nil {
			t.Errorf("parseTime(%q): expected error", in)
			continue
		}
		// The error names the rejected input, not whichever layout failed last.
		if !strings.Contains(err.Error(), in) {
			t.Errorf("parseTime(%q) error %q does not mention the input", in, err)
		}
	}
}
