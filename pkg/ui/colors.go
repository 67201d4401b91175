package ui

import (
	"fmt"
	"os"
	"time"
)

// ANSI color codes used across the terminal output.
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorGray    = "\033[90m"
)

var colorEnabled = detectColors()

func detectColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// ColorsEnabled reports whether output uses ANSI colors.
func ColorsEnabled() bool {
	return colorEnabled
}

// SetColorsEnabled forces color output on or off.
func SetColorsEnabled(enabled bool) {
	colorEnabled = enabled
}

// Colorize wraps text in the given ANSI color when colors are enabled.
func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + ColorReset
}

// CreateHyperlink emits an OSC8 terminal hyperlink. Falls back to the
// bare text when colors are off or the URL is empty.
func CreateHyperlink(url, text string) string {
	if !colorEnabled || url == "" {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// EmojiText returns the emoji variant on capable terminals, the plain
// fallback otherwise.
func EmojiText(emoji, fallback string) string {
	if colorEnabled {
		return emoji
	}
	return fallback
}

// FormatRelativeTime renders a timestamp as a rough age, "45 minutes
// ago" style. Zero times render as empty.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return pluralAgo(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return pluralAgo(int(elapsed.Hours()), "hour")
	}

	days := int(elapsed.Hours() / 24)
	switch {
	case days < 30:
		return pluralAgo(days, "day")
	case days < 365:
		return pluralAgo(days/30, "month")
	default:
		return pluralAgo(days/365, "year")
	}
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
