package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun/dialect"
)

// Period is a trend window size.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod validates an API period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func (p Period) days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	}
	return 30
}

// Window returns the inclusive date range the period covers, ending today.
func (p Period) Window(today time.Time) (start, end string) {
	return today.AddDate(0, 0, -p.days()).Format("2006-01-02"),
		today.Format("2006-01-02")
}

// TrendPoint is one calendar date's race count and purse total. Dates with no
// races are omitted; callers wanting a dense series back-fill themselves.
type TrendPoint struct {
	Date       string          `json:"date"`
	RaceCount  int             `json:"raceCount"`
	TotalPurse decimal.Decimal `json:"totalPurse"`
}

// TrendsResult wraps the period with its per-date buckets.
type TrendsResult struct {
	Period Period       `json:"period"`
	Data   []TrendPoint `json:"data"`
}

// Trends buckets races per calendar date over the period's window, counting
// races and summing purses with missing purses treated as zero.
func (s *Service) Trends(ctx context.Context, period Period) (*TrendsResult, error) {
	start, end := period.Window(time.Now())

	dateExpr := "race_date"
	if s.db.Dialect().Name() == dialect.PG {
		dateExpr = "race_date::text"
	}

	q := fmt.Sprintf(`SELECT
	%s AS date,
	COUNT(*) AS race_count,
	COALESCE(SUM(COALESCE(purse, 0)), 0) AS total_purse
FROM races
WHERE race_date BETWEEN ? AND ?
GROUP BY race_date
ORDER BY race_date ASC`, dateExpr)

	var rows []struct {
		Date       string          `bun:"date"`
		RaceCount  int             `bun:"race_count"`
		TotalPurse decimal.Decimal `bun:"total_purse"`
	}
	if err := s.db.NewRaw(q, start, end).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("aggregating race trends for %s: %w", period, err)
	}

	data := make([]TrendPoint, len(rows))
	for i, r := range rows {
		data[i] = TrendPoint{
			Date:       r.Date,
			RaceCount:  r.RaceCount,
			TotalPurse: r.TotalPurse.Round(2),
		}
	}
	return &TrendsResult{Period: period, Data: data}, nil
}
