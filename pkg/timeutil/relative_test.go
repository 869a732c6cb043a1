package timeutil

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds collapse to just now", 45 * time.Second, "Just now"},
		{"just under a minute", 59 * time.Second, "Just now"},
		{"one minute", time.Minute, "1 minute ago"},
		{"several minutes", 5 * time.Minute, "5 minutes ago"},
		{"ninety minutes floor to one hour", 90 * time.Minute, "1 hour ago"},
		{"several hours", 5 * time.Hour, "5 hours ago"},
		{"one day", 25 * time.Hour, "1 day ago"},
		{"several days", 48 * time.Hour, "2 days ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Relative(now, now.Add(-tc.ago)); got != tc.want {
				t.Fatalf("Relative(-%s) = %q, want %q", tc.ago, got, tc.want)
			}
		})
	}
}
