package timeutil

import (
	"fmt"
	"time"
)

// Relative renders how long ago ts happened, for activity feeds.
// Durations under a minute collapse to "Just now"; everything else is
// floored to the largest whole unit of minutes, hours, or days.
func Relative(now, ts time.Time) string {
	diff := now.Sub(ts)
	if diff < time.Minute {
		return "Just now"
	}
	if diff < time.Hour {
		return plural(int(diff.Minutes()), "minute")
	}
	if diff < 24*time.Hour {
		return plural(int(diff.Hours()), "hour")
	}
	return plural(int(diff.Hours()/24), "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
