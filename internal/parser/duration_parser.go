package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxMinutes caps a single learning entry or pomodoro target at one day
const maxMinutes = 24 * 60

var durationRegex = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m?)?$`)

// ParseMinutes parses a positive amount of minutes
// Supported formats:
// - plain minutes (e.g., "45")
// - minutes with unit (e.g., "45m")
// - hours (e.g., "2h")
// - hours and minutes (e.g., "1h30m", "1h30")
func ParseMinutes(input string) (int, error) {
	input = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	matches := durationRegex.FindStringSubmatch(input)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, fmt.Errorf("invalid duration %q. Use: 45, 45m, 2h or 1h30m", input)
	}

	total := 0
	if matches[1] != "" {
		hours, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid hours")
		}
		if hours > maxMinutes/60 {
			return 0, fmt.Errorf("duration must be at most %d minutes", maxMinutes)
		}
		total += hours * 60
	}
	if matches[2] != "" {
		minutes, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes")
		}
		if minutes > maxMinutes {
			return 0, fmt.Errorf("duration must be at most %d minutes", maxMinutes)
		}
		total += minutes
	}

	if total < 1 {
		return 0, fmt.Errorf("duration must be at least 1 minute")
	}
	if total > maxMinutes {
		return 0, fmt.Errorf("duration must be at most %d minutes", maxMinutes)
	}
	return total, nil
}

// ParseTarget parses a pomodoro target into a duration
func ParseTarget(input string) (time.Duration, error) {
	minutes, err := ParseMinutes(input)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// FormatSeconds renders seconds as MM:SS, or HH:MM:SS from one hour up
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatMinutes renders a minute total for the learning summary
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
