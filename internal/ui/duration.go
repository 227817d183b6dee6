// Package ui provides terminal-facing formatting and color helpers for cclink.
package ui

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as a compact "1h2m3s"-style string,
// clamping negative input to zero. Used for TTL-remaining and
// time-since-expiry display in list/pickup output.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatAge renders how long ago t was, e.g. "3m12s ago".
func FormatAge(t time.Time, now time.Time) string {
	return FormatDuration(now.Sub(t)) + " ago"
}
