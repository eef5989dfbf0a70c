package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatCredits renders an amount as a currency string with the given
// symbol and a fixed number of decimal places.
func FormatCredits(symbol string, amount float64, decimals int) string {
	return fmt.Sprintf("%s%.*f", symbol, decimals, amount)
}

// FormatDuration renders a duration as a compact human-readable string,
// e.g. "1 day 3 hours" or "4 minutes 12 seconds". Sub-second durations
// collapse to "0 seconds".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	add := func(n int, unit string) {
		if n == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", unit))
		} else if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %ss", n, unit))
		}
	}
	add(days, "day")
	add(hours, "hour")
	add(minutes, "minute")
	add(seconds, "second")

	if len(parts) == 0 {
		return "0 seconds"
	}
	if len(parts) > 2 {
		parts = parts[:2] // two most significant units are enough
	}
	return strings.Join(parts, " ")
}

// FormatTimestampMs renders an epoch-ms timestamp as a UTC date-time.
func FormatTimestampMs(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}
