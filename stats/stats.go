// Package stats computes aggregate performance figures from race entries.
// All computations are read-only; percentages are always derived from the
// underlying entries, never stored.
package stats

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/onharness/harnessapi/models"
)

// ErrNotFound is returned when the requested entity id does not exist.
// A missing entity is an absence, not a zero-stat row.
var ErrNotFound = errors.New("entity not found")

// Kind selects which entity a computation runs against.
type Kind string

const (
	KindHorse   Kind = "horse"
	KindDriver  Kind = "driver"
	KindTrainer Kind = "trainer"
)

// ParseKind maps the plural API category names onto a Kind.
func ParseKind(category string) (Kind, error) {
	switch category {
	case "horse", "horses":
		return KindHorse, nil
	case "driver", "drivers":
		return KindDriver, nil
	case "trainer", "trainers":
		return KindTrainer, nil
	}
	return "", fmt.Errorf("unknown category %q", category)
}

func (k Kind) table() string {
	switch k {
	case KindDriver:
		return "drivers"
	case KindTrainer:
		return "trainers"
	}
	return "horses"
}

func (k Kind) pkColumn() string {
	switch k {
	case KindDriver:
		return "driver_id"
	case KindTrainer:
		return "trainer_id"
	}
	return "horse_id"
}

// fkColumn is the referencing column on race_entries; it matches the entity
// table's primary key name.
func (k Kind) fkColumn() string { return k.pkColumn() }

// Result holds the aggregate statistics for one entity. BestTime and
// RecentForm are populated for horses only.
type Result struct {
	Kind            Kind            `json:"kind"`
	EntityID        int             `json:"entityID"`
	TotalStarts     int             `json:"totalStarts"`
	Wins            int             `json:"wins"`
	Places          int             `json:"places"`
	Shows           int             `json:"shows"`
	WinPercentage   float64         `json:"winPercentage"`
	PlacePercentage float64         `json:"placePercentage"`
	ShowPercentage  float64         `json:"showPercentage"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	AverageEarnings decimal.Decimal `json:"averageEarnings"`
	BestTime        *string         `json:"bestTime,omitempty"`
	RecentForm      []string        `json:"recentForm,omitempty"`
}

// Service computes statistics against the given store. It holds no state
// beyond the connection handle and is safe for concurrent use.
type Service struct {
	db *bun.DB
}

func New(db *bun.DB) *Service { return &Service{db: db} }

// Stats aggregates all non-scratched entries for one entity. Entries with no
// recorded finish position count toward starts but not wins, places or shows.
func (s *Service) Stats(ctx context.Context, kind Kind, id int) (*Result, error) {
	exists, err := s.entityExists(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("looking up %s %d: %w", kind, id, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var agg struct {
		TotalStarts   int             `bun:"total_starts"`
		Wins          int             `bun:"wins"`
		Places        int             `bun:"places"`
		Shows         int             `bun:"shows"`
		TotalEarnings decimal.Decimal `bun:"total_earnings"`
	}

	q := fmt.Sprintf(`SELECT
	COUNT(*) AS total_starts,
	COALESCE(SUM(CASE WHEN finish_position = 1 THEN 1 ELSE 0 END), 0) AS wins,
	COALESCE(SUM(CASE WHEN finish_position = 2 THEN 1 ELSE 0 END), 0) AS places,
	COALESCE(SUM(CASE WHEN finish_position = 3 THEN 1 ELSE 0 END), 0) AS shows,
	COALESCE(SUM(earnings), 0) AS total_earnings
FROM race_entries WHERE %s = ? AND NOT scratched`, kind.fkColumn())

	if err := s.db.NewRaw(q, id).Scan(ctx, &agg); err != nil {
		return nil, fmt.Errorf("aggregating entries for %s %d: %w", kind, id, err)
	}

	res := &Result{
		Kind:            kind,
		EntityID:        id,
		TotalStarts:     agg.TotalStarts,
		Wins:            agg.Wins,
		Places:          agg.Places,
		Shows:           agg.Shows,
		WinPercentage:   percentage(agg.Wins, agg.TotalStarts),
		PlacePercentage: percentage(agg.Wins+agg.Places, agg.TotalStarts),
		ShowPercentage:  percentage(agg.Wins+agg.Places+agg.Shows, agg.TotalStarts),
		TotalEarnings:   agg.TotalEarnings.Round(2),
		AverageEarnings: averageEarnings(agg.TotalEarnings, agg.TotalStarts),
	}

	if kind == KindHorse {
		if res.BestTime, err = s.bestWinningTime(ctx, id); err != nil {
			return nil, err
		}
		if res.RecentForm, err = s.recentForm(ctx, id); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *Service) entityExists(ctx context.Context, kind Kind, id int) (bool, error) {
	var model interface{}
	switch kind {
	case KindHorse:
		model = (*models.Horse)(nil)
	case KindDriver:
		model = (*models.Driver)(nil)
	case KindTrainer:
		model = (*models.Trainer)(nil)
	default:
		return false, fmt.Errorf("unknown kind %q", kind)
	}

	return s.db.NewSelect().Model(model).
		Where(fmt.Sprintf("%s = ?", kind.pkColumn()), id).
		Exists(ctx)
}

// bestWinningTime returns the display string of the horse's fastest winning
// mile, comparing parsed times rather than raw strings.
func (s *Service) bestWinningTime(ctx context.Context, horseID int) (*string, error) {
	var times []string
	err := s.db.NewSelect().
		TableExpr("race_entries").
		ColumnExpr("finish_time").
		Where("horse_id = ?", horseID).
		Where("finish_position = 1").
		Where("NOT scratched").
		Where("finish_time <> ''").
		Scan(ctx, &times)
	if err != nil {
		return nil, fmt.Errorf("loading winning times for horse %d: %w", horseID, err)
	}

	best := BestTime(times)
	if best == "" {
		return nil, nil
	}
	return &best, nil
}

// recentForm returns the last five finish positions, most recent first, with
// unplaced runs rendered as "DNF".
func (s *Service) recentForm(ctx context.Context, horseID int) ([]string, error) {
	var rows []struct {
		FinishPosition *int `bun:"finish_position"`
	}
	err := s.db.NewSelect().
		TableExpr("race_entries e").
		ColumnExpr("e.finish_position").
		Join("INNER JOIN races rc ON e.race_id = rc.race_id").
		Where("e.horse_id = ?", horseID).
		Where("NOT e.scratched").
		OrderExpr("rc.race_date DESC, rc.race_number DESC").
		Limit(5).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("loading recent form for horse %d: %w", horseID, err)
	}

	positions := make([]*int, len(rows))
	for i, r := range rows {
		positions[i] = r.FinishPosition
	}
	return RenderForm(positions), nil
}

// RenderForm renders finish positions as display strings, using "DNF" for
// entries with no recorded finish.
func RenderForm(positions []*int) []string {
	form := make([]string, len(positions))
	for i, p := range positions {
		if p == nil {
			form[i] = "DNF"
		} else {
			form[i] = fmt.Sprintf("%d", *p)
		}
	}
	return form
}

// percentage returns n/starts as a percentage rounded to two decimals, zero
// when there are no starts.
func percentage(n, starts int) float64 {
	if starts == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(starts)*100*100) / 100
}

func averageEarnings(total decimal.Decimal, starts int) decimal.Decimal {
	if starts == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(starts))).Round(2)
}
