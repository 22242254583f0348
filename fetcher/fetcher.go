// Package fetcher ingests racing data from external sources and falls back
// to sample-data generation when the sources yield nothing useful. Source
// failures never propagate past the fallback boundary: a broken or empty
// source is the same as "no data".
package fetcher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/onharness/harnessapi/metrics"
	"github.com/onharness/harnessapi/models"
	"github.com/onharness/harnessapi/sampledata"
)

// Service runs ingestion with generation fallback.
type Service struct {
	db         *bun.DB
	log        *zap.Logger
	sources    []Source
	gen        *sampledata.Generator
	minRecords int
}

func NewService(db *bun.DB, log *zap.Logger, gen *sampledata.Generator, minRecords int, sources ...Source) *Service {
	return &Service{db: db, log: log, gen: gen, minRecords: minRecords, sources: sources}
}

// RunResult reports one ingestion run.
type RunResult struct {
	RunID         string             `json:"runID"`
	RecordsStored int                `json:"recordsStored"`
	Fallback      bool               `json:"fallback"`
	Errors        []string           `json:"errors,omitempty"`
	Generation    *sampledata.Report `json:"generation,omitempty"`
}

// Run fetches from every source, stores whatever came back, and generates
// sample data when the stored record count stays below the configured
// minimum. Each source attempt is recorded in the data_fetches audit table.
func (s *Service) Run(ctx context.Context) *RunResult {
	res := &RunResult{RunID: uuid.NewString()}

	today := time.Now().Format("2006-01-02")
	for _, src := range s.sources {
		cards, err := src.FetchRaces(ctx, today)
		if err != nil {
			s.log.Warn("source fetch failed",
				zap.String("source", src.Name()), zap.Error(err))
			res.Errors = append(res.Errors, err.Error())
			s.recordFetch(ctx, res.RunID, src.Name(), models.FetchFailed, 0, err)
			continue
		}

		stored, storeErr := s.storeCards(ctx, cards)
		res.RecordsStored += stored
		if storeErr != nil {
			res.Errors = append(res.Errors, storeErr.Error())
			s.recordFetch(ctx, res.RunID, src.Name(), models.FetchPartial, stored, storeErr)
			continue
		}
		s.recordFetch(ctx, res.RunID, src.Name(), models.FetchSuccess, stored, nil)
	}

	metrics.FetchRecordsTotal.Add(float64(res.RecordsStored))

	if res.RecordsStored < s.minRecords {
		s.log.Info("falling back to sample data generation",
			zap.Int("stored", res.RecordsStored),
			zap.Int("minimum", s.minRecords))
		res.Fallback = true
		res.Generation = s.gen.Run(ctx)
	}

	status := models.FetchSuccess
	if len(res.Errors) > 0 || (res.Fallback && res.Generation != nil && !res.Generation.Success) {
		status = models.FetchPartial
	}
	metrics.FetchRunsTotal.WithLabelValues(status).Inc()

	return res
}

// storeCards writes externally sourced cards, creating referenced tracks and
// roster entries by name when they do not exist yet. Partially populated
// records are tolerated; entries with no horse name are skipped.
func (s *Service) storeCards(ctx context.Context, cards []RaceCard) (int, error) {
	stored := 0
	for _, card := range cards {
		if card.TrackName == "" || card.RaceDate == "" || card.RaceNumber <= 0 {
			continue
		}

		trackID, err := s.ensureTrack(ctx, card.TrackName)
		if err != nil {
			return stored, err
		}

		exists, err := s.db.NewSelect().Model((*models.Race)(nil)).
			Where("track_id = ?", trackID).
			Where("race_date = ?", card.RaceDate).
			Where("race_number = ?", card.RaceNumber).
			Exists(ctx)
		if err != nil {
			return stored, fmt.Errorf("checking race: %w", err)
		}
		if exists {
			continue
		}

		race := &models.Race{
			TrackID:    trackID,
			RaceNumber: card.RaceNumber,
			RaceDate:   card.RaceDate,
			PostTime:   card.PostTime,
			Distance:   card.Distance,
			Purse:      card.Purse,
			Status:     models.StatusScheduled,
		}

		entries := 0
		err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewInsert().Model(race).Exec(ctx); err != nil {
				return fmt.Errorf("inserting race: %w", err)
			}
			for _, er := range card.Entries {
				if er.HorseName == "" {
					continue
				}
				entry, err := s.buildEntry(ctx, tx, race.RaceID, er)
				if err != nil {
					return err
				}
				if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
					return fmt.Errorf("inserting entry: %w", err)
				}
				entries++
			}
			return nil
		})
		if err != nil {
			return stored, err
		}
		stored += 1 + entries
	}
	return stored, nil
}

func (s *Service) buildEntry(ctx context.Context, tx bun.Tx, raceID int, er EntryRecord) (*models.RaceEntry, error) {
	horseID, err := ensureByName(ctx, tx, &models.Horse{Name: er.HorseName, Active: true},
		"horses", "horse_id", er.HorseName, func(m *models.Horse) int { return m.HorseID })
	if err != nil {
		return nil, err
	}
	driverID, err := ensureByName(ctx, tx, &models.Driver{Name: er.DriverName, Active: true},
		"drivers", "driver_id", er.DriverName, func(m *models.Driver) int { return m.DriverID })
	if err != nil {
		return nil, err
	}
	trainerID, err := ensureByName(ctx, tx, &models.Trainer{Name: er.TrainerName, Active: true},
		"trainers", "trainer_id", er.TrainerName, func(m *models.Trainer) int { return m.TrainerID })
	if err != nil {
		return nil, err
	}

	return &models.RaceEntry{
		RaceID:          raceID,
		HorseID:         horseID,
		DriverID:        driverID,
		TrainerID:       trainerID,
		PostPosition:    er.PostPosition,
		ProgramNumber:   er.ProgramNumber,
		MorningLineOdds: er.MorningLineOdds,
		FinishPosition:  er.FinishPosition,
		FinishTime:      er.FinishTime,
		Earnings:        er.Earnings,
	}, nil
}

// ensureByName looks up an entity by name, inserting it when absent, and
// returns its id. Real sources supply no registration or license numbers, so
// the name is the only usable key.
func ensureByName[T any](ctx context.Context, tx bun.Tx, fresh *T, table, pk, name string, id func(*T) int) (int, error) {
	if name == "" {
		name = "Unknown"
	}

	var existing int
	err := tx.NewSelect().
		TableExpr(table).
		ColumnExpr(pk).
		Where("name = ?", name).
		Limit(1).
		Scan(ctx, &existing)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up %s %q: %w", table, name, err)
	}

	if _, err := tx.NewInsert().Model(fresh).Exec(ctx); err != nil {
		return 0, fmt.Errorf("inserting %s %q: %w", table, name, err)
	}
	return id(fresh), nil
}

func (s *Service) ensureTrack(ctx context.Context, name string) (int, error) {
	track := &models.Track{}
	err := s.db.NewSelect().Model(track).Where("name = ?", name).Scan(ctx)
	if err == nil {
		return track.TrackID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up track %q: %w", name, err)
	}

	track = &models.Track{Name: name, Location: "Ontario", Surface: models.SurfaceSynthetic, Active: true}
	if _, err := s.db.NewInsert().Model(track).Exec(ctx); err != nil {
		return 0, fmt.Errorf("inserting track %q: %w", name, err)
	}
	return track.TrackID, nil
}

// recordFetch writes one audit row. Audit failures are logged, never fatal.
func (s *Service) recordFetch(ctx context.Context, runID, source, status string, records int, fetchErr error) {
	now := time.Now()
	row := &models.DataFetch{
		RunID:            runID,
		Source:           source,
		FetchType:        "races",
		FetchDate:        now.Format("2006-01-02"),
		Status:           status,
		RecordsProcessed: records,
		CompletedAt:      &now,
	}
	if fetchErr != nil {
		msg := fetchErr.Error()
		row.ErrorMessage = &msg
	}

	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		s.log.Warn("recording data fetch failed", zap.Error(err))
	}
}

// DataStatus reports store counts and data freshness.
type DataStatus struct {
	LastFetch     *time.Time `json:"lastFetch,omitempty"`
	TotalRaces    int        `json:"totalRaces"`
	TotalHorses   int        `json:"totalHorses"`
	TotalDrivers  int        `json:"totalDrivers"`
	TotalTrainers int        `json:"totalTrainers"`
	DataFreshness string     `json:"dataFreshness"`
}

// Status summarises what the store holds and how recently it was refreshed:
// fresh under two hours, stale under a day, outdated beyond that.
func (s *Service) Status(ctx context.Context) (*DataStatus, error) {
	status := &DataStatus{DataFreshness: "outdated"}

	last := &models.DataFetch{}
	err := s.db.NewSelect().Model(last).
		Where("status = ?", models.FetchSuccess).
		Where("completed_at IS NOT NULL").
		OrderExpr("completed_at DESC").
		Limit(1).
		Scan(ctx)
	switch {
	case err == nil && last.CompletedAt != nil:
		status.LastFetch = last.CompletedAt
		switch age := time.Since(*last.CompletedAt); {
		case age < 2*time.Hour:
			status.DataFreshness = "fresh"
		case age < 24*time.Hour:
			status.DataFreshness = "stale"
		}
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("loading last fetch: %w", err)
	}

	counts := []struct {
		model interface{}
		dest  *int
	}{
		{(*models.Race)(nil), &status.TotalRaces},
		{(*models.Horse)(nil), &status.TotalHorses},
		{(*models.Driver)(nil), &status.TotalDrivers},
		{(*models.Trainer)(nil), &status.TotalTrainers},
	}
	for _, c := range counts {
		q := s.db.NewSelect().Model(c.model)
		if _, ok := c.model.(*models.Race); !ok {
			q = q.Where("active")
		}
		n, err := q.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting %T: %w", c.model, err)
		}
		*c.dest = n
	}

	return status, nil
}
