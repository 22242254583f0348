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

// Drivers returns active drivers ordered by name, with optional
// case-insensitive name search.
func (h *Handler) Drivers(c echo.Context) error {
	limit := limitParam(c, 50, 200)

	var drivers []models.Driver
	q := h.db.NewSelect().Model(&drivers).
		Where("active").
		OrderExpr("name ASC").
		Limit(limit)

	if name := c.QueryParam("name"); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, drivers)
}

// Driver returns a single driver by id.
func (h *Handler) Driver(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid driver id")
	}

	driver := &models.Driver{}
	err = h.db.NewSelect().Model(driver).
		Where("driver_id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "driver not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, driver)
}

// DriverStats returns a driver's aggregated career statistics.
func (h *Handler) DriverStats(c echo.Context) error {
	return h.entityStats(c, stats.KindDriver, "driver not found")
}
