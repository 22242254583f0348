package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onharness/harnessapi/stats"
)

func TestParseRaceTime(t *testing.T) {
	rt, err := stats.ParseRaceTime("1:52.30")
	require.NoError(t, err)
	assert.Equal(t, 1, rt.Minutes)
	assert.Equal(t, 52, rt.Seconds)
	assert.Equal(t, 30, rt.Hundredths)
	assert.Equal(t, 11230, rt.TotalHundredths())
}

func TestParseRaceTimeSingleDigitFraction(t *testing.T) {
	rt, err := stats.ParseRaceTime("1:55.4")
	require.NoError(t, err)
	assert.Equal(t, 40, rt.Hundredths, "a single fractional digit means tenths")
}

func TestParseRaceTimeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "1:75.00", "fast", "-1:52.30", "1:52.300"} {
		_, err := stats.ParseRaceTime(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseRaceTimeNoFraction(t *testing.T) {
	rt, err := stats.ParseRaceTime("1:52")
	require.NoError(t, err)
	assert.Equal(t, 0, rt.Hundredths)
}

func TestBestTimePicksFastestParsed(t *testing.T) {
	best := stats.BestTime([]string{"1:55.00", "1:49.80", "1:52.30"})
	assert.Equal(t, "1:49.80", best)
}

func TestBestTimeNumericNotLexicographic(t *testing.T) {
	// Lexicographic comparison would pick "1:50.9" over "1:50.10".
	best := stats.BestTime([]string{"1:50.9", "1:50.10"})
	assert.Equal(t, "1:50.10", best)
}

func TestBestTimeIgnoresUnparseable(t *testing.T) {
	best := stats.BestTime([]string{"n/a", "1:53.00", "??"})
	assert.Equal(t, "1:53.00", best)
}

func TestBestTimeLexicographicFallback(t *testing.T) {
	// Legacy rows can hold times in other formats; with nothing parseable the
	// smallest string wins rather than nothing at all.
	best := stats.BestTime([]string{"2.01,4", "1.58,2"})
	assert.Equal(t, "1.58,2", best)
}

func TestBestTimeEmpty(t *testing.T) {
	assert.Equal(t, "", stats.BestTime(nil))
}
