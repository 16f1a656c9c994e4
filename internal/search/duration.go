package search

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISODuration converts an ISO-8601 duration string such as "PT4M13S"
// (the YouTube contentDetails format) into seconds. Only the time portion
// with hours, minutes, and seconds is supported.
func ParseISODuration(iso string) (int, error) {
	if !strings.HasPrefix(iso, "PT") {
		return 0, fmt.Errorf("unsupported duration format: %q", iso)
	}

	rest := strings.TrimPrefix(iso, "PT")
	total := 0
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			if num == "" {
				return 0, fmt.Errorf("malformed duration: %q", iso)
			}
			value, err := strconv.Atoi(num)
			if err != nil {
				return 0, fmt.Errorf("malformed duration: %q", iso)
			}
			switch r {
			case 'H':
				total += value * 3600
			case 'M':
				total += value * 60
			case 'S':
				total += value
			}
			num = ""
		default:
			return 0, fmt.Errorf("unsupported duration component %q in %q", r, iso)
		}
	}
	if num != "" {
		return 0, fmt.Errorf("trailing digits in duration: %q", iso)
	}
	return total, nil
}

// FormatDuration renders seconds as "M:SS" or "H:MM:SS" for display.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
