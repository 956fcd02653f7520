package helper

import (
	"fmt"
	"strings"
)

// FormatLapTime converts a duration in seconds to a M:SS.mmm display string.
// Minutes are not padded, seconds are padded to two digits and milliseconds
// to three. Non-positive durations render as "-".
func FormatLapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	minutes := int(seconds / 60)
	seconds = seconds - float64(minutes*60)
	millis := int((seconds-float64(int(seconds)))*1000 + 0.5)
	secs := int(seconds)
	if millis >= 1000 {
		millis -= 1000
		secs++
	}
	if secs >= 60 {
		secs -= 60
		minutes++
	}
	return fmt.Sprintf("%d:%02d.%03d", minutes, secs, millis)
}

// FormatDelta renders a signed gap in seconds to three decimals.
func FormatDelta(seconds float64) string {
	return fmt.Sprintf("%+.3fs", seconds)
}

// DriverCode builds a short code from a full name when the feed does not
// carry an acronym: first letter of the name plus the first two letters of
// the surname.
func DriverCode(name string) string {
	if name == "" {
		return ""
	}
	words := strings.Fields(name)
	code := string([]rune(words[0])[0])
	if len(words) > 1 {
		last := []rune(words[len(words)-1])
		if len(last) > 2 {
			code += string(last[:2])
		} else {
			code += string(last)
		}
	} else if len(words[0]) > 2 {
		code += words[0][1:3]
	}
	return strings.ToUpper(code)
}
