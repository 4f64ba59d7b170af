package crontab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTable = `
ID        Name            Schedule             Next             Last             Status    Target      Agent
job-1     Daily Report    cron 0 18 * * 1-5    2026-01-16 18:00 2026-01-15 18:00 active    isolated    main
job-2     Heartbeat       every 30s            -                -                active    shared      watcher
job-3     Cleanup         cron 30 2 * * 0      2026-01-18 02:30 -                paused    isolated    main
`

func TestParseTableSample(t *testing.T) {
	jobs := ParseTable(sampleTable)
	require.Len(t, jobs, 3)

	first := jobs[0]
	require.Equal(t, "job-1", first.JobID)
	require.Equal(t, "Daily Report", first.Name)
	require.Equal(t, "cron 0 18 * * 1-5", first.Schedule)
	require.Equal(t, "18:00 every weekdays", first.ScheduleHuman)
	require.NotNil(t, first.NextRun)
	require.Equal(t, "2026-01-16 18:00", *first.NextRun)
	require.Equal(t, "active", first.Status)
	require.Equal(t, "isolated", first.Target)
	require.Equal(t, "main", first.Agent)

	second := jobs[1]
	require.Equal(t, "Every 30 seconds", second.ScheduleHuman)
	require.Nil(t, second.NextRun)
	require.Nil(t, second.LastRun)
	require.Equal(t, "watcher", second.Agent)

	third := jobs[2]
	require.Equal(t, "02:30 every Sunday", third.ScheduleHuman)
	require.Nil(t, third.LastRun)
	require.Equal(t, "paused", third.Status)
}

func TestParseTableNoHeader(t *testing.T) {
	jobs := ParseTable("no jobs configured\nrun `openclaw cron add` to create one\n")
	require.Empty(t, jobs)
}

func TestParseTableEmptyOutput(t *testing.T) {
	require.Empty(t, ParseTable(""))
	require.Empty(t, ParseTable("\n\n  \n"))
}

func TestParseTableHeaderOnly(t *testing.T) {
	jobs := ParseTable("ID        Name      Schedule  Next      Last      Status    Target    Agent\n")
	require.Empty(t, jobs)
}

func TestParseTableDropsRowsWithoutID(t *testing.T) {
	table := strings.Join([]string{
		"ID        Name      Schedule  Next      Last      Status    Target    Agent",
		"          Orphan    every 5m  -         -         active    isolated  main",
		"job-9     Kept      every 5m  -         -         active    isolated  main",
	}, "\n")

	jobs := ParseTable(table)
	require.Len(t, jobs, 1)
	require.Equal(t, "job-9", jobs[0].JobID)
}

func TestParseTableDefaultsEmptyCells(t *testing.T) {
	table := strings.Join([]string{
		"ID        Name      Schedule  Next      Last      Status    Target    Agent",
		"job-7     Sparse    every 1h",
	}, "\n")

	jobs := ParseTable(table)
	require.Len(t, jobs, 1)
	require.Equal(t, DefaultStatus, jobs[0].Status)
	require.Equal(t, DefaultTarget, jobs[0].Target)
	require.Equal(t, DefaultAgent, jobs[0].Agent)
	require.Nil(t, jobs[0].NextRun)
	require.Nil(t, jobs[0].LastRun)
}

func TestParseTableDashMeansAbsent(t *testing.T) {
	table := strings.Join([]string{
		"ID        Name      Schedule  Next      Last      Status    Target    Agent",
		"job-4     Dashy     every 2h  -         -         active    isolated  main",
	}, "\n")

	jobs := ParseTable(table)
	require.Len(t, jobs, 1)
	require.Nil(t, jobs[0].NextRun)
	require.Nil(t, jobs[0].LastRun)
}

func TestColumnsFromHeader(t *testing.T) {
	header := "ID        Name            Schedule             Next             Last             Status    Target      Agent"
	cols := columnsFromHeader(header)

	require.Equal(t, 0, cols.id)
	require.Equal(t, strings.Index(header, "Name"), cols.name)
	require.Equal(t, strings.Index(header, "Agent"), cols.agent)
	require.True(t, cols.name < cols.schedule)
	require.True(t, cols.schedule < cols.next)
	require.True(t, cols.status < cols.target)
}
