package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onharness/harnessapi/stats"
)

// dashboardRecentRow is a flat scan target for today's most recent results.
type dashboardRecentRow struct {
	RaceID     int    `bun:"race_id" json:"raceID"`
	RaceNumber int    `bun:"race_number" json:"raceNumber"`
	RaceDate   string `bun:"race_date" json:"raceDate"`
	TrackName  string `bun:"track_name" json:"trackName"`
	Status     string `bun:"status" json:"status"`
}

type dashboard struct {
	Date           string               `json:"date"`
	RacesToday     int                  `json:"racesToday"`
	ActiveHorses   int                  `json:"activeHorses"`
	ActiveDrivers  int                  `json:"activeDrivers"`
	ActiveTrainers int                  `json:"activeTrainers"`
	RecentRaces    []dashboardRecentRow `json:"recentRaces"`
	TopHorses      []stats.Performer    `json:"topHorses"`
	TopDrivers     []stats.Performer    `json:"topDrivers"`
	TopTrainers    []stats.Performer    `json:"topTrainers"`
}

// Dashboard aggregates the day's headline numbers with short win
// leaderboards for each roster.
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	today := time.Now().Format("2006-01-02")

	d := dashboard{Date: today}

	var err error
	d.RacesToday, err = h.db.NewSelect().
		TableExpr("races").
		Where("race_date = ?", today).
		Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, rc := range []struct {
		table string
		dst   *int
	}{
		{"horses", &d.ActiveHorses},
		{"drivers", &d.ActiveDrivers},
		{"trainers", &d.ActiveTrainers},
	} {
		*rc.dst, err = h.db.NewSelect().
			TableExpr(rc.table).
			Where("active").
			Count(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	err = h.db.NewSelect().
		TableExpr("races rc").
		ColumnExpr("rc.race_id, rc.race_number, "+h.dateExpr("rc.race_date")+" AS race_date, t.name AS track_name, rc.status").
		Join("INNER JOIN tracks t ON rc.track_id = t.track_id").
		Where("rc.status = ?", "finished").
		OrderExpr("rc.race_date DESC, rc.race_number DESC").
		Limit(5).
		Scan(ctx, &d.RecentRaces)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if d.RecentRaces == nil {
		d.RecentRaces = []dashboardRecentRow{}
	}

	for _, l := range []struct {
		kind stats.Kind
		dst  *[]stats.Performer
	}{
		{stats.KindHorse, &d.TopHorses},
		{stats.KindDriver, &d.TopDrivers},
		{stats.KindTrainer, &d.TopTrainers},
	} {
		*l.dst, err = h.stats.TopPerformers(ctx, l.kind, stats.MetricWins, 5, 1)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if *l.dst == nil {
			*l.dst = []stats.Performer{}
		}
	}

	return c.JSON(http.StatusOK, d)
}

// TopPerformers ranks horses, drivers or trainers by a chosen metric.
func (h *Handler) TopPerformers(c echo.Context) error {
	kind, err := stats.ParseKind(c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	metric := stats.MetricWins
	if v := c.QueryParam("metric"); v != "" {
		metric, err = stats.ParseMetric(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	limit := limitParam(c, 10, stats.MaxLimit)
	minStarts := stats.DefaultMinStarts
	if v := c.QueryParam("minStarts"); v != "" {
		n, convErr := parsePositive(v)
		if convErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid minStarts")
		}
		minStarts = n
	}

	performers, err := h.stats.TopPerformers(c.Request().Context(), kind, metric, limit, minStarts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if performers == nil {
		performers = []stats.Performer{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"category":   string(kind),
		"metric":     string(metric),
		"performers": performers,
	})
}

// Trends returns daily race counts and purse totals over a trailing window.
func (h *Handler) Trends(c echo.Context) error {
	period := stats.PeriodMonth
	if v := c.QueryParam("period"); v != "" {
		var err error
		period, err = stats.ParsePeriod(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	res, err := h.stats.Trends(c.Request().Context(), period)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, res)
}
