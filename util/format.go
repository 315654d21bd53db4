package util

import (
	"fmt"
	"math"
)

var byteUnits = []string{"bytes", "KB", "MB", "GB"}

// FormatDuration renders seconds as m:ss, or h:mm:ss past the hour; non-finite input renders as 0:00.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}

	total := int(math.Round(math.Max(0, seconds)))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatTimestamp renders a playhead position as m:ss, truncating fractional seconds.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "—"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	if value >= 10 || unit == 0 {
		return fmt.Sprintf("%.0f %s", value, byteUnits[unit])
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// FormatBitrate renders bits per second as Mbps.
func FormatBitrate(bitRate int64) string {
	if bitRate <= 0 {
		return "—"
	}

	mbps := float64(bitRate) / 1_000_000
	if mbps >= 10 {
		return fmt.Sprintf("%.0f Mbps", mbps)
	}
	return fmt.Sprintf("%.1f Mbps", mbps)
}
