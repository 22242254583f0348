package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onharness/harnessapi/stats"
)

func TestPeriodWindow(t *testing.T) {
	today := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	start, end := stats.PeriodWeek.Window(today)
	assert.Equal(t, "2026-08-23", start)
	assert.Equal(t, "2026-08-30", end)

	start, _ = stats.PeriodYear.Window(today)
	assert.Equal(t, "2025-08-30", start)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"week", "month", "quarter", "year"} {
		_, err := stats.ParsePeriod(s)
		assert.NoError(t, err)
	}
	_, err := stats.ParsePeriod("decade")
	assert.Error(t, err)
}

func TestTrendsBucketsByDate(t *testing.T) {
	f := newFixture(t)
	svc := stats.New(f.db)

	today := time.Now()
	dayOne := today.AddDate(0, 0, -2).Format("2006-01-02")
	dayTwo := today.AddDate(0, 0, -1).Format("2006-01-02")

	f.race(t, dayOne)
	f.race(t, dayOne)
	f.race(t, dayTwo)

	res, err := svc.Trends(context.Background(), stats.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, stats.PeriodWeek, res.Period)
	require.Len(t, res.Data, 2)
	assert.Equal(t, dayOne, res.Data[0].Date, "buckets come back oldest first")
	assert.Equal(t, 2, res.Data[0].RaceCount)
	assert.Equal(t, dayTwo, res.Data[1].Date)
	assert.Equal(t, 1, res.Data[1].RaceCount)
}

func TestTrendsExcludesOutsideWindow(t *testing.T) {
	f := newFixture(t)
	svc := stats.New(f.db)

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	f.race(t, old)

	res, err := svc.Trends(context.Background(), stats.PeriodWeek)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}

func TestTrendsMissingPursesCountAsZero(t *testing.T) {
	f := newFixture(t)
	svc := stats.New(f.db)

	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	f.race(t, day) // purse left NULL

	res, err := svc.Trends(context.Background(), stats.PeriodWeek)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.True(t, res.Data[0].TotalPurse.IsZero())
	assert.Equal(t, 1, res.Data[0].RaceCount)
}
