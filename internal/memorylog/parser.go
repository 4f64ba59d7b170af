// Package memorylog parses OpenClaw markdown memory logs into activity records.
//
// Memory files are dated markdown documents (2026-01-15.md) whose `## `
// sections each describe one agent action, optionally with a time in the
// header: "## Backtest Audit Complete (14:58 EST)". Parsing is heuristic and
// never fails: sections that don't fit the expected shape are dropped.
package memorylog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Action types assigned by keyword classification.
const (
	ActionAnalysis = "analysis"
	ActionCron     = "cron"
	ActionMessage  = "message"
	ActionFile     = "file"
	ActionSearch   = "search"
	ActionTool     = "tool"
	ActionNote     = "note"
)

// StatusCompleted is the only status the parser ever emits.
const StatusCompleted = "completed"

const maxDescriptionLength = 500

// Activity is one logged agent action extracted from a memory file section.
type Activity struct {
	Timestamp   int64  `json:"timestamp"`
	ActionType  string `json:"actionType"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TokensUsed  *int   `json:"tokensUsed,omitempty"`
	Source      string `json:"source"`
}

var (
	fileDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	// Header shape: "## <title>" optionally followed by "(H:MM AM|PM|EST|PST|UTC)".
	// Named zones are accepted but not applied; timestamps stay in local time.
	headerPattern = regexp.MustCompile(`(?i)^##\s*(.+?)(?:\s*\((\d{1,2}:\d{2})\s*(AM|PM|EST|PST|UTC)?\))?$`)
)

// actionKeywords maps substring keywords to action types, in priority order.
// The first group with a match wins, so a section mentioning both "backtest"
// and "message" classifies as analysis.
var actionKeywords = []struct {
	action   string
	keywords []string
}{
	{ActionAnalysis, []string{"backtest", "analysis"}},
	{ActionCron, []string{"cron", "scheduled"}},
	{ActionMessage, []string{"message", "sent"}},
	{ActionFile, []string{"file", "created", "updated"}},
	{ActionSearch, []string{"search", "research"}},
	{ActionTool, []string{"tool", "exec", "browser"}},
}

// Parse extracts activities from the content of one memory file. The calendar
// date comes from the YYYY-MM-DD portion of fileName; when the filename
// carries no date, today's date is used. Malformed sections are skipped, so
// the result may be empty but parsing never fails. Activities are returned in
// file order; sorting across files is the caller's concern.
func Parse(content, fileName string) []Activity {
	year, month, day := fileDate(fileName)

	activities := []Activity{}
	for _, section := range splitSections(content) {
		activity, ok := parseSection(section, year, month, day)
		if !ok {
			continue
		}
		activity.Source = "memory/" + fileName
		activities = append(activities, activity)
	}
	return activities
}

// fileDate pulls the first YYYY-MM-DD out of the filename, falling back to
// the current date. Out-of-range components are normalized by time.Date
// rather than rejected.
func fileDate(fileName string) (int, time.Month, int) {
	m := fileDatePattern.FindStringSubmatch(fileName)
	if m == nil {
		now := time.Now()
		return now.Year(), now.Month(), now.Day()
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return year, time.Month(month), day
}

// splitSections segments content at each "## " header line. The header line
// and everything up to the next header belong to one section. Text before the
// first header is dropped; it can never produce a matching header line.
func splitSections(content string) [][]string {
	var sections [][]string
	var current []string

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			if current != nil {
				sections = append(sections, current)
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		sections = append(sections, current)
	}
	return sections
}

func parseSection(lines []string, year int, month time.Month, day int) (Activity, bool) {
	header := headerPattern.FindStringSubmatch(lines[0])
	if header == nil {
		return Activity{}, false
	}

	title := strings.TrimSpace(header[1])
	timeStr := header[2]
	if timeStr == "" {
		timeStr = "12:00"
	}
	meridiem := strings.ToUpper(header[3])

	hours, minutes := splitClock(timeStr)
	if meridiem == "PM" && hours < 12 {
		hours += 12
	}
	if meridiem == "AM" && hours == 12 {
		hours = 0
	}
	timestamp := time.Date(year, month, day, hours, minutes, 0, 0, time.Local).UnixMilli()

	description := extractDescription(lines[1:], title)

	return Activity{
		Timestamp:   timestamp,
		ActionType:  classify(strings.Join(lines, "\n")),
		Description: description,
		Status:      StatusCompleted,
	}, true
}

func splitClock(timeStr string) (int, int) {
	hh, mm, _ := strings.Cut(timeStr, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return hours, minutes
}

// classify picks the action type by case-insensitive substring search over
// the whole section, first matching keyword group wins.
func classify(section string) string {
	lower := strings.ToLower(section)
	for _, group := range actionKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.action
			}
		}
	}
	return ActionNote
}

// extractDescription keeps the first two body lines that are non-blank and
// not headers or list items, joined with a space. The section title stands in
// when nothing survives. The result is capped at 500 characters.
func extractDescription(body []string, title string) string {
	kept := make([]string, 0, 2)
	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			continue
		}
		kept = append(kept, line)
		if len(kept) == 2 {
			break
		}
	}

	description := strings.TrimSpace(strings.Join(kept, " "))
	if description == "" {
		description = title
	}
	return truncate(description, maxDescriptionLength)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
