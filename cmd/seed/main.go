// cmd/seed/main.go
// Populates the database with sample racing data.
//
// Usage:
//
//	go run ./cmd/seed -back 7 -forward 3 -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/onharness/harnessapi/config"
	bundb "github.com/onharness/harnessapi/db"
	applog "github.com/onharness/harnessapi/logger"
	"github.com/onharness/harnessapi/sampledata"
)

func main() {
	back := flag.Int("back", 7, "days of historical cards to generate")
	forward := flag.Int("forward", 3, "days of upcoming cards to generate")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	flag.Parse()

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}

	genCfg := sampledata.DefaultConfig()
	genCfg.DaysBack = *back
	genCfg.DaysForward = *forward
	genCfg.Seed = *seed

	report := sampledata.New(db, logger, genCfg).Run(context.Background())
	if !report.Success {
		log.Fatal("generation failed:", report.Error)
	}

	st := report.Statistics
	fmt.Printf("created %d tracks, %d horses, %d drivers, %d trainers, %d races, %d entries\n",
		st.TracksCreated, st.HorsesCreated, st.DriversCreated, st.TrainersCreated,
		st.RacesCreated, st.EntriesCreated)
}
