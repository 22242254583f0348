package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/onharness/harnessapi/fetcher"
	"github.com/onharness/harnessapi/sampledata"
	"github.com/onharness/harnessapi/stats"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db    *bun.DB
	stats *stats.Service
	fetch *fetcher.Service
	gen   *sampledata.Generator
}

// New creates a Handler with the given database connection and services.
func New(db *bun.DB, statsSvc *stats.Service, fetchSvc *fetcher.Service, gen *sampledata.Generator) *Handler {
	return &Handler{db: db, stats: statsSvc, fetch: fetchSvc, gen: gen}
}

// limitParam reads a limit query parameter, clamped to max with a default for
// missing or invalid values.
func limitParam(c echo.Context, def, max int) int {
	v := c.QueryParam("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func idParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// parsePositive parses a strictly positive integer.
func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive, got %d", n)
	}
	return n, nil
}

// dateExpr casts a date column for raw queries: PostgreSQL needs ::text to
// scan into a string; SQLite stores the column as text already.
func (h *Handler) dateExpr(col string) string {
	if h.db.Dialect().Name() == dialect.PG {
		return col + "::text"
	}
	return col
}
