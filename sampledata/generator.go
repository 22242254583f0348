// Package sampledata fabricates a structurally consistent demo dataset:
// tracks, rosters, races with spaced post times, and finished-race entries
// with a valid finishing-order permutation and a halving payout curve.
package sampledata

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/onharness/harnessapi/metrics"
	"github.com/onharness/harnessapi/models"
)

// Config controls the shape of a generation run.
type Config struct {
	// Racing days relative to today: [today-DaysBack, today+DaysForward].
	DaysBack    int
	DaysForward int

	BaseHour          int // first post hour, races spaced after it
	SpacingMinMinutes int
	SpacingMaxMinutes int

	MinRacesPerCard int
	MaxRacesPerCard int
	MinFieldSize    int
	MaxFieldSize    int

	// DarkDayChance is the probability a (track, day) pair races no card.
	DarkDayChance float64

	// Seed fixes the random source; zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the standard demo-dataset shape.
func DefaultConfig() Config {
	return Config{
		DaysBack:          7,
		DaysForward:       3,
		BaseHour:          19,
		SpacingMinMinutes: 15,
		SpacingMaxMinutes: 20,
		MinRacesPerCard:   8,
		MaxRacesPerCard:   12,
		MinFieldSize:      6,
		MaxFieldSize:      8,
		DarkDayChance:     0.2,
	}
}

// Statistics counts rows created by one run. Existing rows are never touched,
// so a re-run over the same window reports zeros.
type Statistics struct {
	TracksCreated   int `json:"tracksCreated"`
	HorsesCreated   int `json:"horsesCreated"`
	DriversCreated  int `json:"driversCreated"`
	TrainersCreated int `json:"trainersCreated"`
	RacesCreated    int `json:"racesCreated"`
	EntriesCreated  int `json:"entriesCreated"`
}

// Report is the outcome of a generation run. A failed phase reports
// success=false together with whatever was created before the failure;
// earlier phases stay committed.
type Report struct {
	Success    bool       `json:"success"`
	Statistics Statistics `json:"statistics"`
	Error      string     `json:"error,omitempty"`
}

// Generator populates the store with sample data. It holds no mutable state;
// each run derives its own random source, so one Generator can serve HTTP
// handlers and the scheduler concurrently.
type Generator struct {
	db  *bun.DB
	log *zap.Logger
	cfg Config
}

func New(db *bun.DB, log *zap.Logger, cfg Config) *Generator {
	return &Generator{db: db, log: log, cfg: cfg}
}

// Run executes the three phases – tracks, rosters, races – committing each
// phase separately. Generation is idempotent: everything is create-if-absent
// keyed on track name, registration/license number and (track, date, race
// number).
func (g *Generator) Run(ctx context.Context) *Report {
	st := Statistics{}

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	if err := g.ensureTracks(ctx, &st); err != nil {
		return g.fail(st, fmt.Errorf("track phase: %w", err))
	}
	if err := g.ensureRosters(ctx, &st); err != nil {
		return g.fail(st, fmt.Errorf("roster phase: %w", err))
	}
	if err := g.createRaces(ctx, rnd, &st); err != nil {
		return g.fail(st, fmt.Errorf("race phase: %w", err))
	}

	metrics.SampleRacesTotal.Add(float64(st.RacesCreated))
	metrics.SampleEntriesTotal.Add(float64(st.EntriesCreated))

	g.log.Info("sample data generated",
		zap.Int("races", st.RacesCreated),
		zap.Int("entries", st.EntriesCreated),
		zap.Int("horses", st.HorsesCreated))
	return &Report{Success: true, Statistics: st}
}

func (g *Generator) fail(st Statistics, err error) *Report {
	g.log.Error("sample data generation failed", zap.Error(err))
	return &Report{Success: false, Statistics: st, Error: err.Error()}
}

func (g *Generator) ensureTracks(ctx context.Context, st *Statistics) error {
	return g.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, seed := range trackCatalog {
			exists, err := tx.NewSelect().Model((*models.Track)(nil)).
				Where("name = ?", seed.Name).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			track := &models.Track{
				Name:          seed.Name,
				Location:      seed.Location,
				Surface:       seed.Surface,
				Circumference: seed.Circumference,
				Active:        true,
			}
			if _, err := tx.NewInsert().Model(track).Exec(ctx); err != nil {
				return fmt.Errorf("inserting track %q: %w", seed.Name, err)
			}
			st.TracksCreated++
		}
		return nil
	})
}

func (g *Generator) ensureRosters(ctx context.Context, st *Statistics) error {
	return g.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, seed := range horseRoster {
			exists, err := tx.NewSelect().Model((*models.Horse)(nil)).
				Where("registration_number = ?", seed.RegistrationNumber).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			reg := seed.RegistrationNumber
			foaled := "2019-04-15"
			horse := &models.Horse{
				Name:               seed.Name,
				RegistrationNumber: &reg,
				FoalingDate:        &foaled,
				Sex:                seed.Sex,
				Color:              seed.Color,
				Sire:               "Sample Sire",
				Dam:                "Sample Dam",
				Breeder:            "Sample Breeder",
				Owner:              seed.Owner,
				Active:             true,
			}
			if _, err := tx.NewInsert().Model(horse).Exec(ctx); err != nil {
				return fmt.Errorf("inserting horse %q: %w", seed.Name, err)
			}
			st.HorsesCreated++
		}

		for _, seed := range driverRoster {
			exists, err := tx.NewSelect().Model((*models.Driver)(nil)).
				Where("license_number = ?", seed.LicenseNumber).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			lic := seed.LicenseNumber
			born := "1985-06-15"
			driver := &models.Driver{
				Name:          seed.Name,
				LicenseNumber: &lic,
				BirthDate:     &born,
				Hometown:      seed.Hometown,
				Active:        true,
			}
			if _, err := tx.NewInsert().Model(driver).Exec(ctx); err != nil {
				return fmt.Errorf("inserting driver %q: %w", seed.Name, err)
			}
			st.DriversCreated++
		}

		for _, seed := range trainerRoster {
			exists, err := tx.NewSelect().Model((*models.Trainer)(nil)).
				Where("license_number = ?", seed.LicenseNumber).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			lic := seed.LicenseNumber
			born := "1975-08-20"
			trainer := &models.Trainer{
				Name:          seed.Name,
				LicenseNumber: &lic,
				BirthDate:     &born,
				Hometown:      seed.Hometown,
				Active:        true,
			}
			if _, err := tx.NewInsert().Model(trainer).Exec(ctx); err != nil {
				return fmt.Errorf("inserting trainer %q: %w", seed.Name, err)
			}
			st.TrainersCreated++
		}

		return nil
	})
}

var samplePurses = []int64{8000, 10000, 12000, 15000, 20000}

func (g *Generator) createRaces(ctx context.Context, rnd *rand.Rand, st *Statistics) error {
	var tracks []models.Track
	if err := g.db.NewSelect().Model(&tracks).Where("active").Scan(ctx); err != nil {
		return fmt.Errorf("loading tracks: %w", err)
	}
	var horses []models.Horse
	if err := g.db.NewSelect().Model(&horses).Scan(ctx); err != nil {
		return fmt.Errorf("loading horses: %w", err)
	}
	var drivers []models.Driver
	if err := g.db.NewSelect().Model(&drivers).Scan(ctx); err != nil {
		return fmt.Errorf("loading drivers: %w", err)
	}
	var trainers []models.Trainer
	if err := g.db.NewSelect().Model(&trainers).Scan(ctx); err != nil {
		return fmt.Errorf("loading trainers: %w", err)
	}

	// Races cannot be fabricated without a roster to draw from.
	if len(tracks) == 0 || len(horses) == 0 || len(drivers) == 0 || len(trainers) == 0 {
		g.log.Warn("race generation skipped: empty roster")
		return nil
	}

	today := time.Now().Format("2006-01-02")

	for off := -g.cfg.DaysBack; off <= g.cfg.DaysForward; off++ {
		raceDate := time.Now().AddDate(0, 0, off).Format("2006-01-02")

		for _, track := range tracks {
			if rnd.Float64() < g.cfg.DarkDayChance {
				continue // dark day at this track
			}

			numRaces := g.cfg.MinRacesPerCard + rnd.Intn(g.cfg.MaxRacesPerCard-g.cfg.MinRacesPerCard+1)
			spacing := g.cfg.SpacingMinMinutes + rnd.Intn(g.cfg.SpacingMaxMinutes-g.cfg.SpacingMinMinutes+1)

			for raceNum := 1; raceNum <= numRaces; raceNum++ {
				created, entries, err := g.createRace(ctx, rnd, track.TrackID, raceDate, raceNum, spacing, raceDate < today, horses, drivers, trainers)
				if err != nil {
					return err
				}
				if created {
					st.RacesCreated++
					st.EntriesCreated += entries
				}
			}
		}
	}

	return nil
}

// createRace writes one race and its entries in a single transaction so a
// race never exists with a partially assigned field.
func (g *Generator) createRace(ctx context.Context, rnd *rand.Rand, trackID int, raceDate string, raceNum, spacing int, finished bool,
	horses []models.Horse, drivers []models.Driver, trainers []models.Trainer) (bool, int, error) {

	exists, err := g.db.NewSelect().Model((*models.Race)(nil)).
		Where("track_id = ?", trackID).
		Where("race_date = ?", raceDate).
		Where("race_number = ?", raceNum).
		Exists(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("checking race %d at track %d on %s: %w", raceNum, trackID, raceDate, err)
	}
	if exists {
		return false, 0, nil
	}

	fieldSize := g.fieldSize(rnd, len(horses), len(drivers), len(trainers))
	hour, minute := PostTime(g.cfg.BaseHour, raceNum, spacing)
	purse := decimal.NewFromInt(samplePurses[rnd.Intn(len(samplePurses))])

	status := models.StatusScheduled
	if finished {
		status = models.StatusFinished
	}
	temp := 22.0

	race := &models.Race{
		TrackID:        trackID,
		RaceNumber:     raceNum,
		RaceDate:       raceDate,
		PostTime:       FormatPostTime(hour, minute),
		Distance:       1609,
		Purse:          &purse,
		RaceType:       "allowance",
		Conditions:     "Non-winners of $10,000 in last 5 starts",
		TrackCondition: "fast",
		Weather:        "clear",
		Temperature:    &temp,
		Status:         status,
	}

	horsePick := rnd.Perm(len(horses))[:fieldSize]
	driverPick := rnd.Perm(len(drivers))[:fieldSize]
	trainerPick := rnd.Perm(len(trainers))[:fieldSize]
	finishOrder := rnd.Perm(fieldSize) // finishOrder[i]+1 is entry i's finish

	entries := 0
	err = g.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(race).Exec(ctx); err != nil {
			return fmt.Errorf("inserting race %d at track %d on %s: %w", raceNum, trackID, raceDate, err)
		}

		for i := 0; i < fieldSize; i++ {
			entry := &models.RaceEntry{
				RaceID:          race.RaceID,
				HorseID:         horses[horsePick[i]].HorseID,
				DriverID:        drivers[driverPick[i]].DriverID,
				TrainerID:       trainers[trainerPick[i]].TrainerID,
				PostPosition:    i + 1,
				ProgramNumber:   fmt.Sprintf("%d", i+1),
				MorningLineOdds: odds(rnd, 20),
				Earnings:        decimal.Zero,
			}

			if finished {
				pos := finishOrder[i] + 1
				entry.FinishPosition = &pos
				entry.FinalOdds = odds(rnd, 25)
				entry.FinishTime = finishTime(rnd)
				entry.Earnings = Payout(purse, pos)
				if pos > 1 {
					entry.Margin = fmt.Sprintf("%d lengths", 1+rnd.Intn(10))
				}
			}

			if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
				return fmt.Errorf("inserting entry %d of race %d: %w", i+1, race.RaceID, err)
			}
			entries++
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return true, entries, nil
}

func (g *Generator) fieldSize(rnd *rand.Rand, nHorses, nDrivers, nTrainers int) int {
	max := g.cfg.MaxFieldSize
	for _, n := range []int{nHorses, nDrivers, nTrainers} {
		if n < max {
			max = n
		}
	}
	if max <= g.cfg.MinFieldSize {
		return max
	}
	return g.cfg.MinFieldSize + rnd.Intn(max-g.cfg.MinFieldSize+1)
}

func odds(rnd *rand.Rand, max int) string {
	return fmt.Sprintf("%d-1", 2+rnd.Intn(max-1))
}

func finishTime(rnd *rand.Rand) string {
	return fmt.Sprintf("1:%02d.%02d", 50+rnd.Intn(10), 10+rnd.Intn(90))
}
