// Package crontab parses the column-aligned table printed by `openclaw cron
// list` into job records, and renders schedule expressions as human-readable
// phrases.
package crontab

import "strings"

// Default field values for rows with empty cells.
const (
	DefaultStatus = "unknown"
	DefaultTarget = "isolated"
	DefaultAgent  = "main"
)

// Job is one scheduled task extracted from a table row.
type Job struct {
	JobID         string  `json:"jobId"`
	Name          string  `json:"name"`
	Schedule      string  `json:"schedule"`
	ScheduleHuman string  `json:"scheduleHuman"`
	NextRun       *string `json:"nextRun,omitempty"`
	LastRun       *string `json:"lastRun,omitempty"`
	Status        string  `json:"status"`
	Target        string  `json:"target"`
	Agent         string  `json:"agent"`
}

// columnOffsets holds the character offset of each column label in the header
// row. Offsets are computed once per table and reused for every data row; the
// table is assumed to be fixed-width, so an overlong field bleeds into its
// neighbor rather than failing the row.
type columnOffsets struct {
	id       int
	name     int
	schedule int
	next     int
	last     int
	status   int
	target   int
	agent    int
}

// columnsFromHeader locates each label in the header line. Labels are
// expected left to right: ID, Name, Schedule, Next, Last, Status, Target,
// Agent.
func columnsFromHeader(header string) columnOffsets {
	return columnOffsets{
		id:       strings.Index(header, "ID"),
		name:     strings.Index(header, "Name"),
		schedule: strings.Index(header, "Schedule"),
		next:     strings.Index(header, "Next"),
		last:     strings.Index(header, "Last"),
		status:   strings.Index(header, "Status"),
		target:   strings.Index(header, "Target"),
		agent:    strings.Index(header, "Agent"),
	}
}

// ParseTable extracts jobs from raw `openclaw cron list` output. A missing
// header row, or a table with no data rows, yields an empty slice; rows whose
// ID cell is empty are dropped. ParseTable never fails.
func ParseTable(output string) []Job {
	jobs := []Job{}

	lines := nonBlankLines(output)

	var header string
	for _, line := range lines {
		if strings.HasPrefix(line, "ID") {
			header = line
			break
		}
	}
	if header == "" {
		return jobs
	}

	cols := columnsFromHeader(header)

	for _, line := range lines {
		if strings.HasPrefix(line, "ID") {
			continue
		}
		if job, ok := parseRow(line, cols); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func parseRow(line string, cols columnOffsets) (Job, bool) {
	jobID := field(line, cols.id, cols.name)
	if jobID == "" {
		return Job{}, false
	}

	schedule := field(line, cols.schedule, cols.next)

	return Job{
		JobID:         jobID,
		Name:          field(line, cols.name, cols.schedule),
		Schedule:      schedule,
		ScheduleHuman: Humanize(schedule),
		NextRun:       optionalField(line, cols.next, cols.last),
		LastRun:       optionalField(line, cols.last, cols.status),
		Status:        fieldOrDefault(line, cols.status, cols.target, DefaultStatus),
		Target:        fieldOrDefault(line, cols.target, cols.agent, DefaultTarget),
		Agent:         fieldOrDefault(line, cols.agent, len(line), DefaultAgent),
	}, true
}

// field slices one cell out of a row and trims it. Offsets are clamped so
// short rows produce empty cells instead of a panic.
func field(line string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < 0 || end > len(line) {
		end = len(line)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(line[start:end])
}

// optionalField treats an empty cell or the placeholder "-" as absent.
func optionalField(line string, start, end int) *string {
	value := field(line, start, end)
	if value == "" || value == "-" {
		return nil
	}
	return &value
}

func fieldOrDefault(line string, start, end int, fallback string) string {
	if value := field(line, start, end); value != "" {
		return value
	}
	return fallback
}

func nonBlankLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
