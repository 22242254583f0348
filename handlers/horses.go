package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onharness/harnessapi/models"
	"github.com/onharness/harnessapi/stats"
)

// Horses returns active horses ordered by name, with optional case-insensitive
// name search.
func (h *Handler) Horses(c echo.Context) error {
	limit := limitParam(c, 50, 200)

	var horses []models.Horse
	q := h.db.NewSelect().Model(&horses).
		Where("active").
		OrderExpr("name ASC").
		Limit(limit)

	if name := c.QueryParam("name"); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, horses)
}

// Horse returns a single horse by id.
func (h *Handler) Horse(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid horse id")
	}

	horse := &models.Horse{}
	err = h.db.NewSelect().Model(horse).
		Where("horse_id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "horse not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, horse)
}

// HorseStats returns a horse's aggregated career statistics.
func (h *Handler) HorseStats(c echo.Context) error {
	return h.entityStats(c, stats.KindHorse, "horse not found")
}

// HorseRaces returns a horse's most recent results, newest first.
func (h *Handler) HorseRaces(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid horse id")
	}
	limit := limitParam(c, 20, 50)

	var rows []raceResultRow
	err = h.db.NewSelect().
		TableExpr("race_entries e").
		ColumnExpr(h.resultColumns()).
		Join(resultJoins).
		Where("e.horse_id = ?", id).
		Where("NOT e.scratched").
		OrderExpr("rc.race_date DESC, rc.race_number DESC").
		Limit(limit).
		Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, toResultJSON(rows))
}

// entityStats runs the stats service for one entity and maps missing rows to
// a 404.
func (h *Handler) entityStats(c echo.Context, kind stats.Kind, notFound string) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res, err := h.stats.Stats(c.Request().Context(), kind, id)
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, notFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, res)
}
