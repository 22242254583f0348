package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/onharness/harnessapi/models"
)

// raceResultRow is a flat scan target for the entry/race/roster join.
type raceResultRow struct {
	RaceID         int             `bun:"race_id"`
	RaceNumber     int             `bun:"race_number"`
	RaceDate       string          `bun:"race_date"`
	TrackName      string          `bun:"track_name"`
	Distance       int             `bun:"distance"`
	FinishPosition *int            `bun:"finish_position"`
	FinishTime     string          `bun:"finish_time"`
	Margin         string          `bun:"margin"`
	Earnings       decimal.Decimal `bun:"earnings"`
	HorseName      string          `bun:"horse_name"`
	DriverName     string          `bun:"driver_name"`
	TrainerName    string          `bun:"trainer_name"`
	FinalOdds      string          `bun:"final_odds"`
}

type raceResultJSON struct {
	RaceID         int             `json:"raceID"`
	RaceNumber     int             `json:"raceNumber"`
	RaceDate       string          `json:"raceDate"`
	TrackName      string          `json:"trackName"`
	Distance       int             `json:"distance"`
	FinishPosition *int            `json:"finishPosition,omitempty"`
	FinishTime     string          `json:"finishTime,omitempty"`
	Margin         string          `json:"margin,omitempty"`
	Earnings       decimal.Decimal `json:"earnings"`
	HorseName      string          `json:"horseName"`
	DriverName     string          `json:"driverName"`
	TrainerName    string          `json:"trainerName"`
	FinalOdds      string          `json:"finalOdds,omitempty"`
}

func toResultJSON(rows []raceResultRow) []raceResultJSON {
	out := make([]raceResultJSON, len(rows))
	for i, r := range rows {
		out[i] = raceResultJSON{
			RaceID:         r.RaceID,
			RaceNumber:     r.RaceNumber,
			RaceDate:       r.RaceDate,
			TrackName:      r.TrackName,
			Distance:       r.Distance,
			FinishPosition: r.FinishPosition,
			FinishTime:     r.FinishTime,
			Margin:         r.Margin,
			Earnings:       r.Earnings,
			HorseName:      r.HorseName,
			DriverName:     r.DriverName,
			TrainerName:    r.TrainerName,
			FinalOdds:      r.FinalOdds,
		}
	}
	return out
}

func (h *Handler) resultColumns() string {
	return `e.race_id, rc.race_number, ` + h.dateExpr("rc.race_date") + ` AS race_date,
	t.name AS track_name, rc.distance,
	e.finish_position, e.finish_time, e.margin, e.earnings,
	h.name AS horse_name, d.name AS driver_name, tr.name AS trainer_name, e.final_odds`
}

const resultJoins = `
INNER JOIN races    rc ON e.race_id    = rc.race_id
INNER JOIN tracks   t  ON rc.track_id  = t.track_id
INNER JOIN horses   h  ON e.horse_id   = h.horse_id
INNER JOIN drivers  d  ON e.driver_id  = d.driver_id
INNER JOIN trainers tr ON e.trainer_id = tr.trainer_id`

// Races returns races with optional date and track filters, newest first.
func (h *Handler) Races(c echo.Context) error {
	limit := limitParam(c, 50, 100)

	var races []models.Race
	q := h.db.NewSelect().Model(&races).
		OrderExpr("race_date DESC, race_number ASC").
		Limit(limit)

	if date := c.QueryParam("date"); date != "" {
		q = q.Where("race_date = ?", date)
	}
	if v := c.QueryParam("trackID"); v != "" {
		trackID, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid trackID")
		}
		q = q.Where("track_id = ?", trackID)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, races)
}

// Race returns a single race by id.
func (h *Handler) Race(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	race := &models.Race{}
	err = h.db.NewSelect().Model(race).
		Where("race_id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "race not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, race)
}

// RaceResults returns a race's finishers in finishing order.
func (h *Handler) RaceResults(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	var rows []raceResultRow
	err = h.db.NewSelect().
		TableExpr("race_entries e").
		ColumnExpr(h.resultColumns()).
		Join(resultJoins).
		Where("e.race_id = ?", id).
		Where("e.finish_position IS NOT NULL").
		OrderExpr("e.finish_position ASC").
		Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, toResultJSON(rows))
}
