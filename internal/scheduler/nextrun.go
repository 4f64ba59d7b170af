// Package scheduler refreshes the persisted dashboard caches in the
// background and previews upcoming cron runs.
package scheduler

import (
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Matches the CLI schedule forms "M H dom mon dow", "cron M H dom mon dow",
// and "cron M H dom mon dow @ <timezone>".
var cronSchedulePattern = regexp.MustCompile(`^(?:cron\s+)?(\S+\s+\S+\s+\S+\s+\S+\s+\S+?)(?:\s+@\s*(\S+))?$`)

// NextRunPreview computes the next fire time for a 5-field cron schedule,
// RFC 3339 formatted. Interval and unrecognized schedules yield nil; the
// preview only fills in what the CLI left blank, it never overrides a Next
// cell the CLI printed.
func NextRunPreview(schedule string, now time.Time) *string {
	m := cronSchedulePattern.FindStringSubmatch(strings.TrimSpace(schedule))
	if m == nil {
		return nil
	}

	location := time.Local
	if m[2] != "" {
		loaded, err := time.LoadLocation(m[2])
		if err != nil {
			return nil
		}
		location = loaded
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	parsed, err := parser.Parse(m[1])
	if err != nil {
		return nil
	}

	next := parsed.Next(now.In(location)).Format(time.RFC3339)
	return &next
}
