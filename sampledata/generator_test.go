package sampledata_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/onharness/harnessapi/db"
	"github.com/onharness/harnessapi/models"
	"github.com/onharness/harnessapi/sampledata"
)

func testConfig() sampledata.Config {
	cfg := sampledata.DefaultConfig()
	cfg.DaysBack = 2
	cfg.DaysForward = 1
	cfg.DarkDayChance = 0 // deterministic card count
	cfg.Seed = 42
	return cfg
}

func runGenerator(t *testing.T, bdb *bun.DB, cfg sampledata.Config) *sampledata.Report {
	t.Helper()
	report := sampledata.New(bdb, zap.NewNop(), cfg).Run(context.Background())
	require.True(t, report.Success, "generation failed: %s", report.Error)
	return report
}

func TestGeneratorCreatesFullDataset(t *testing.T) {
	bdb := db.SetupTestDB(t)
	report := runGenerator(t, bdb, testConfig())

	st := report.Statistics
	assert.Equal(t, 5, st.TracksCreated)
	assert.Positive(t, st.HorsesCreated)
	assert.Positive(t, st.DriversCreated)
	assert.Positive(t, st.TrainersCreated)
	assert.Positive(t, st.RacesCreated)
	assert.Positive(t, st.EntriesCreated)

	ctx := context.Background()
	races, err := bdb.NewSelect().TableExpr("races").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.RacesCreated, races)
}

func TestGeneratorIdempotent(t *testing.T) {
	bdb := db.SetupTestDB(t)
	cfg := testConfig()

	first := runGenerator(t, bdb, cfg)
	assert.Positive(t, first.Statistics.RacesCreated)

	second := runGenerator(t, bdb, cfg)
	assert.Zero(t, second.Statistics.TracksCreated)
	assert.Zero(t, second.Statistics.HorsesCreated)
	assert.Zero(t, second.Statistics.DriversCreated)
	assert.Zero(t, second.Statistics.TrainersCreated)
	assert.Zero(t, second.Statistics.RacesCreated, "existing races are never touched")
	assert.Zero(t, second.Statistics.EntriesCreated)
}

func TestGeneratorEmptyRosterSkipsRaces(t *testing.T) {
	bdb := db.SetupTestDB(t)
	ctx := context.Background()

	// Pre-seed every catalog track as inactive: the track phase finds them by
	// name and leaves them alone, and race creation has no active track to
	// draw from.
	for _, name := range []string{
		"Woodbine Mohawk Park", "Georgian Downs", "Grand River Raceway",
		"Hanover Raceway", "Kawartha Downs",
	} {
		track := &models.Track{Name: name, Location: "Ontario", Surface: models.SurfaceSynthetic}
		_, err := bdb.NewInsert().Model(track).Exec(ctx)
		require.NoError(t, err)
	}

	report := sampledata.New(bdb, zap.NewNop(), testConfig()).Run(ctx)
	require.True(t, report.Success, "an empty roster is a no-op, not a failure")

	st := report.Statistics
	assert.Zero(t, st.TracksCreated)
	assert.Positive(t, st.HorsesCreated, "roster phase still runs")
	assert.Zero(t, st.RacesCreated)
	assert.Zero(t, st.EntriesCreated)

	races, err := bdb.NewSelect().TableExpr("races").Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, races)
}

func TestGeneratorFailedPhaseKeepsEarlierPhases(t *testing.T) {
	bdb := db.SetupTestDB(t)
	ctx := context.Background()

	_, err := bdb.NewDropTable().Model((*models.RaceEntry)(nil)).Exec(ctx)
	require.NoError(t, err)

	report := sampledata.New(bdb, zap.NewNop(), testConfig()).Run(ctx)
	assert.False(t, report.Success)
	assert.Contains(t, report.Error, "race phase")

	// Track and roster phases committed before the race phase failed, and the
	// report carries their counts.
	st := report.Statistics
	assert.Equal(t, 5, st.TracksCreated)
	assert.Positive(t, st.HorsesCreated)
	assert.Zero(t, st.RacesCreated)

	tracks, err := bdb.NewSelect().TableExpr("tracks").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, tracks)

	races, err := bdb.NewSelect().TableExpr("races").Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, races, "the failing race transaction rolled back")
}

func TestGeneratorConcurrentRuns(t *testing.T) {
	bdb := db.SetupTestDB(t)
	gen := sampledata.New(bdb, zap.NewNop(), testConfig())

	// Populate once, then run the same Generator from several goroutines the
	// way the HTTP handler and the scheduler share it. Each run draws from its
	// own random source and finds every row already present.
	runGenerator(t, bdb, testConfig())

	var wg sync.WaitGroup
	reports := make([]*sampledata.Report, 4)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = gen.Run(context.Background())
		}(i)
	}
	wg.Wait()

	for i, report := range reports {
		require.NotNil(t, report)
		assert.True(t, report.Success, "run %d: %s", i, report.Error)
		assert.Zero(t, report.Statistics.RacesCreated)
	}
}

func TestGeneratorPastRacesFinishedFutureScheduled(t *testing.T) {
	bdb := db.SetupTestDB(t)
	runGenerator(t, bdb, testConfig())

	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	var races []models.Race
	require.NoError(t, bdb.NewSelect().Model(&races).Scan(ctx))
	require.NotEmpty(t, races)

	for _, r := range races {
		if r.RaceDate < today {
			assert.Equal(t, models.StatusFinished, r.Status, "race on %s", r.RaceDate)
		} else {
			assert.Equal(t, models.StatusScheduled, r.Status, "race on %s", r.RaceDate)
		}
	}
}

func TestGeneratorFinishedRacesHaveValidResults(t *testing.T) {
	bdb := db.SetupTestDB(t)
	runGenerator(t, bdb, testConfig())

	ctx := context.Background()
	var races []models.Race
	require.NoError(t, bdb.NewSelect().Model(&races).
		Where("status = ?", models.StatusFinished).Scan(ctx))
	require.NotEmpty(t, races)

	for _, r := range races {
		var entries []models.RaceEntry
		require.NoError(t, bdb.NewSelect().Model(&entries).
			Where("race_id = ?", r.RaceID).Scan(ctx))
		require.NotEmpty(t, entries)

		posts := map[int]bool{}
		finishes := map[int]bool{}
		for _, e := range entries {
			assert.False(t, posts[e.PostPosition], "duplicate post position in race %d", r.RaceID)
			posts[e.PostPosition] = true

			require.NotNil(t, e.FinishPosition, "finished race %d entry missing result", r.RaceID)
			assert.False(t, finishes[*e.FinishPosition], "duplicate finish position in race %d", r.RaceID)
			finishes[*e.FinishPosition] = true
			assert.GreaterOrEqual(t, *e.FinishPosition, 1)
			assert.LessOrEqual(t, *e.FinishPosition, len(entries),
				"finish positions form a permutation of the field")

			if *e.FinishPosition == 1 {
				require.NotNil(t, r.Purse)
				assert.True(t, e.Earnings.Equal(*r.Purse), "winner takes the listed purse")
				assert.Empty(t, e.Margin)
			} else {
				assert.NotEmpty(t, e.Margin)
			}
			assert.NotEmpty(t, e.FinishTime)
		}
	}
}

func TestGeneratorScheduledRacesHaveNoResults(t *testing.T) {
	bdb := db.SetupTestDB(t)
	runGenerator(t, bdb, testConfig())

	ctx := context.Background()
	var entries []models.RaceEntry
	require.NoError(t, bdb.NewSelect().Model(&entries).
		Join("INNER JOIN races rc ON rc.race_id = e.race_id").
		Where("rc.status = ?", models.StatusScheduled).Scan(ctx))
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.Nil(t, e.FinishPosition)
		assert.Empty(t, e.FinishTime)
		assert.True(t, e.Earnings.IsZero())
	}
}
