// cmd/fetchdata/main.go
// Runs one ingestion pass against the configured sources, generating sample
// data when too little comes back.
//
// Usage:
//
//	go run ./cmd/fetchdata
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/onharness/harnessapi/config"
	bundb "github.com/onharness/harnessapi/db"
	"github.com/onharness/harnessapi/fetcher"
	applog "github.com/onharness/harnessapi/logger"
	"github.com/onharness/harnessapi/sampledata"
)

func main() {
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
	genCfg.DaysBack = cfg.SeedDaysBack
	genCfg.DaysForward = cfg.SeedDaysForward
	gen := sampledata.New(db, logger, genCfg)

	svc := fetcher.NewService(db, logger, gen, cfg.MinFetchRecords, fetcher.DefaultSources(logger)...)
	res := svc.Run(context.Background())

	fmt.Printf("run %s: stored %d records, fallback=%t\n",
		res.RunID, res.RecordsStored, res.Fallback)
	for _, e := range res.Errors {
		fmt.Println("source error:", e)
	}
}
