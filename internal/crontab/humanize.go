package crontab

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Five whitespace-separated tokens, with an optional "cron" prefix and an
	// optional "@ <timezone>" suffix as printed by the CLI, e.g.
	// "cron 0 18 * * 1-5 @ America/New_York".
	cronPattern = regexp.MustCompile(`^(?:cron\s+)?(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)(?:\s+@\s*\S+)?$`)

	intervalPattern = regexp.MustCompile(`(?i)every\s+(\d+)(ms|s|m|h)`)
)

// dayNames maps day-of-week tokens to phrases. Only the listed composites are
// recognized; anything else renders verbatim as "day <token>".
var dayNames = map[string]string{
	"0":   "Sunday",
	"1":   "Monday",
	"2":   "Tuesday",
	"3":   "Wednesday",
	"4":   "Thursday",
	"5":   "Friday",
	"6":   "Saturday",
	"7":   "Sunday",
	"1-5": "weekdays",
	"0,6": "weekends",
	"*":   "day",
}

var unitWords = map[string]string{
	"ms": "milliseconds",
	"s":  "seconds",
	"m":  "minutes",
	"h":  "hours",
}

// Humanize renders a schedule expression as a short phrase. Cron expressions
// with literal hour/minute values become "HH:MM every <day>" (or "on <day>"
// when day-of-month or month is pinned); interval expressions like
// "every 500ms" become "Every 500 milliseconds". Anything unrecognized is
// returned unchanged, so Humanize never fails. Hour and minute ranges, lists,
// and steps are not expanded; they pass through as raw token text.
func Humanize(schedule string) string {
	if m := cronPattern.FindStringSubmatch(strings.TrimSpace(schedule)); m != nil {
		return humanizeCron(m[1], m[2], m[3], m[4], m[5])
	}

	if m := intervalPattern.FindStringSubmatch(schedule); m != nil {
		value, _ := strconv.Atoi(m[1])
		unit := strings.ToLower(m[2])
		word, ok := unitWords[unit]
		if !ok {
			word = unit
		}
		return fmt.Sprintf("Every %d %s", value, word)
	}

	return schedule
}

func humanizeCron(minute, hour, dayOfMonth, month, dayOfWeek string) string {
	dayStr, ok := dayNames[dayOfWeek]
	if !ok {
		dayStr = "day " + dayOfWeek
	}

	timeStr := padClock(hour) + ":" + padClock(minute)

	if dayOfMonth == "*" && month == "*" {
		return timeStr + " every " + dayStr
	}
	return timeStr + " on " + dayStr
}

// padClock zero-pads the raw token to two characters. Tokens longer than two
// characters (ranges, lists, steps) are left as-is.
func padClock(token string) string {
	for len(token) < 2 {
		token = "0" + token
	}
	return token
}
