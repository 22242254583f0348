package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Metric selects how a leaderboard is ordered.
type Metric string

const (
	MetricWins     Metric = "wins"
	MetricEarnings Metric = "earnings"
	MetricWinRate  Metric = "win_rate"
)

// DefaultMinStarts is the minimum sample size for rate-based rankings.
// Entities below it are omitted entirely, not ranked low.
const DefaultMinStarts = 5

// MaxLimit caps leaderboard result sizes.
const MaxLimit = 100

// ParseMetric validates an API metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricWins, MetricEarnings, MetricWinRate:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Performer is one leaderboard row.
type Performer struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TotalStarts   int             `json:"totalStarts"`
	Wins          int             `json:"wins"`
	WinPercentage float64         `json:"winPercentage"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
}

// TopPerformers ranks active entities of one kind by the chosen metric.
// Scratched entries never count. Ties break on entity id ascending so
// repeated calls return the same order.
func (s *Service) TopPerformers(ctx context.Context, kind Kind, metric Metric, limit, minStarts int) ([]Performer, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minStarts <= 0 {
		minStarts = DefaultMinStarts
	}

	fk, table, pk := kind.fkColumn(), kind.table(), kind.pkColumn()

	q := fmt.Sprintf(`SELECT
	e.%[1]s AS id,
	x.name AS name,
	COUNT(*) AS total_starts,
	COALESCE(SUM(CASE WHEN e.finish_position = 1 THEN 1 ELSE 0 END), 0) AS wins,
	COALESCE(SUM(e.earnings), 0) AS total_earnings
FROM race_entries e
INNER JOIN %[2]s x ON e.%[1]s = x.%[3]s
WHERE x.active AND NOT e.scratched
GROUP BY e.%[1]s, x.name`, fk, table, pk)

	args := []interface{}{}
	switch metric {
	case MetricWins:
		q += "\nORDER BY wins DESC, id ASC"
	case MetricEarnings:
		q += "\nORDER BY total_earnings DESC, id ASC"
	case MetricWinRate:
		q += "\nHAVING COUNT(*) >= ?" +
			"\nORDER BY (1.0 * SUM(CASE WHEN e.finish_position = 1 THEN 1 ELSE 0 END) / COUNT(*)) DESC, id ASC"
		args = append(args, minStarts)
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
	q += "\nLIMIT ?"
	args = append(args, limit)

	var rows []struct {
		ID            int             `bun:"id"`
		Name          string          `bun:"name"`
		TotalStarts   int             `bun:"total_starts"`
		Wins          int             `bun:"wins"`
		TotalEarnings decimal.Decimal `bun:"total_earnings"`
	}
	if err := s.db.NewRaw(q, args...).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("ranking %s by %s: %w", kind.table(), metric, err)
	}

	performers := make([]Performer, len(rows))
	for i, r := range rows {
		performers[i] = Performer{
			ID:            r.ID,
			Name:          r.Name,
			TotalStarts:   r.TotalStarts,
			Wins:          r.Wins,
			WinPercentage: percentage(r.Wins, r.TotalStarts),
			TotalEarnings: r.TotalEarnings.Round(2),
		}
	}
	return performers, nil
}
