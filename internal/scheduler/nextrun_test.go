package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextRunPreviewBareCron(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	preview := NextRunPreview("0 18 * * *", now)
	require.NotNil(t, preview)

	parsed, err := time.Parse(time.RFC3339, *preview)
	require.NoError(t, err)
	require.Equal(t, 18, parsed.Hour())
	require.True(t, parsed.After(now.In(parsed.Location())))
}

func TestNextRunPreviewCLIPrefix(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	require.NotNil(t, NextRunPreview("cron 30 6 * * 1-5", now))
}

func TestNextRunPreviewTimezoneSuffix(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	preview := NextRunPreview("cron 0 18 * * 1-5 @ America/New_York", now)
	require.NotNil(t, preview)

	parsed, err := time.Parse(time.RFC3339, *preview)
	require.NoError(t, err)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	require.Equal(t, 18, parsed.In(loc).Hour())
}

func TestNextRunPreviewUnparseable(t *testing.T) {
	now := time.Now()
	require.Nil(t, NextRunPreview("every 30s", now))
	require.Nil(t, NextRunPreview("", now))
	require.Nil(t, NextRunPreview("cron bogus tokens here now really", now))
	require.Nil(t, NextRunPreview("cron 0 18 * * 1-5 @ Not/AZone", now))
}
