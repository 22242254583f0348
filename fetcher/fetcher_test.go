package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/onharness/harnessapi/db"
	"github.com/onharness/harnessapi/fetcher"
	"github.com/onharness/harnessapi/models"
	"github.com/onharness/harnessapi/sampledata"
)

// stubSource returns canned cards or a canned error.
type stubSource struct {
	name  string
	cards []fetcher.RaceCard
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchRaces(_ context.Context, _ string) ([]fetcher.RaceCard, error) {
	return s.cards, s.err
}

func testGenerator(bdb *bun.DB) *sampledata.Generator {
	cfg := sampledata.DefaultConfig()
	cfg.DaysBack = 1
	cfg.DaysForward = 0
	cfg.DarkDayChance = 0
	cfg.Seed = 7
	return sampledata.New(bdb, zap.NewNop(), cfg)
}

func sampleCard(n int) fetcher.RaceCard {
	purse := decimal.NewFromInt(12000)
	return fetcher.RaceCard{
		TrackName:  "Flamboro Downs",
		RaceDate:   time.Now().Format("2006-01-02"),
		RaceNumber: n,
		PostTime:   "19:15",
		Distance:   1609,
		Purse:      &purse,
		Entries: []fetcher.EntryRecord{
			{HorseName: "Imported One", DriverName: "A Driver", TrainerName: "A Trainer", PostPosition: 1, ProgramNumber: "1"},
			{HorseName: "Imported Two", DriverName: "B Driver", TrainerName: "B Trainer", PostPosition: 2, ProgramNumber: "2"},
		},
	}
}

func TestRunStoresFetchedCards(t *testing.T) {
	bdb := db.SetupTestDB(t)
	src := &stubSource{name: "stub", cards: []fetcher.RaceCard{sampleCard(1), sampleCard(2)}}

	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 1, src)
	res := svc.Run(context.Background())

	// Two races at three records each: the race row plus two entries.
	assert.Equal(t, 6, res.RecordsStored)
	assert.False(t, res.Fallback)
	assert.Empty(t, res.Errors)
	assert.NotEmpty(t, res.RunID)

	ctx := context.Background()
	races, err := bdb.NewSelect().TableExpr("races").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, races)

	horses, err := bdb.NewSelect().TableExpr("horses").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, horses, "roster entries are created by name")

	var row models.DataFetch
	require.NoError(t, bdb.NewSelect().Model(&row).
		Where("run_id = ?", res.RunID).Scan(ctx))
	assert.Equal(t, models.FetchSuccess, row.Status)
	assert.Equal(t, 6, row.RecordsProcessed)
}

func TestRunFallsBackBelowMinimum(t *testing.T) {
	bdb := db.SetupTestDB(t)
	src := &stubSource{name: "stub", cards: nil}

	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 10, src)
	res := svc.Run(context.Background())

	assert.True(t, res.Fallback)
	require.NotNil(t, res.Generation)
	assert.True(t, res.Generation.Success)
	assert.Positive(t, res.Generation.Statistics.RacesCreated)
}

func TestRunSourceErrorIsRecordedNotFatal(t *testing.T) {
	bdb := db.SetupTestDB(t)
	broken := &stubSource{name: "broken", err: errors.New("connection refused")}
	working := &stubSource{name: "working", cards: []fetcher.RaceCard{sampleCard(1)}}

	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 1, broken, working)
	res := svc.Run(context.Background())

	assert.Equal(t, 3, res.RecordsStored, "the working source still stores")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "connection refused")

	ctx := context.Background()
	var rows []models.DataFetch
	require.NoError(t, bdb.NewSelect().Model(&rows).
		Where("run_id = ?", res.RunID).
		OrderExpr("source ASC").Scan(ctx))
	require.Len(t, rows, 2)
	assert.Equal(t, models.FetchFailed, rows[0].Status)
	require.NotNil(t, rows[0].ErrorMessage)
	assert.Equal(t, models.FetchSuccess, rows[1].Status)
}

func TestRunSkipsDuplicateRaces(t *testing.T) {
	bdb := db.SetupTestDB(t)
	src := &stubSource{name: "stub", cards: []fetcher.RaceCard{sampleCard(1)}}

	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 1, src)
	first := svc.Run(context.Background())
	assert.Equal(t, 3, first.RecordsStored)

	second := svc.Run(context.Background())
	assert.Equal(t, 0, second.RecordsStored, "re-fetching the same card stores nothing")
	assert.True(t, second.Fallback, "zero new records falls below the minimum")

	races, err := bdb.NewSelect().TableExpr("races").
		Where("track_id = (SELECT track_id FROM tracks WHERE name = 'Flamboro Downs')").
		Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, races)
}

func TestStatusFreshness(t *testing.T) {
	bdb := db.SetupTestDB(t)
	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 1)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.LastFetch)
	assert.Equal(t, "outdated", status.DataFreshness)

	recent := time.Now().Add(-30 * time.Minute)
	insertFetch(t, bdb, "s1", models.FetchSuccess, recent)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status.LastFetch)
	assert.Equal(t, "fresh", status.DataFreshness)
}

func TestStatusStaleAndFailedIgnored(t *testing.T) {
	bdb := db.SetupTestDB(t)
	svc := fetcher.NewService(bdb, zap.NewNop(), testGenerator(bdb), 1)

	old := time.Now().Add(-6 * time.Hour)
	insertFetch(t, bdb, "s1", models.FetchSuccess, old)
	// A later failure never advances freshness.
	insertFetch(t, bdb, "s2", models.FetchFailed, time.Now())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stale", status.DataFreshness)
}

func TestStatusCounts(t *testing.T) {
	bdb := db.SetupTestDB(t)
	gen := testGenerator(bdb)
	require.True(t, gen.Run(context.Background()).Success)

	svc := fetcher.NewService(bdb, zap.NewNop(), gen, 1)
	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.Positive(t, status.TotalRaces)
	assert.Positive(t, status.TotalHorses)
	assert.Positive(t, status.TotalDrivers)
	assert.Positive(t, status.TotalTrainers)
}

func insertFetch(t *testing.T, bdb *bun.DB, source, status string, completed time.Time) {
	t.Helper()
	row := &models.DataFetch{
		RunID:       "test-run",
		Source:      source,
		FetchType:   "races",
		FetchDate:   completed.Format("2006-01-02"),
		Status:      status,
		CompletedAt: &completed,
	}
	_, err := bdb.NewInsert().Model(row).Exec(context.Background())
	require.NoError(t, err)
}
