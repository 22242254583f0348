package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onharness/harnessapi/models"
)

// Tracks returns all active tracks ordered by name.
func (h *Handler) Tracks(c echo.Context) error {
	var tracks []models.Track
	err := h.db.NewSelect().Model(&tracks).
		Where("active").
		OrderExpr("name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tracks)
}

// Track returns a single track by id.
func (h *Handler) Track(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid track id")
	}

	track := &models.Track{}
	err = h.db.NewSelect().Model(track).
		Where("track_id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "track not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, track)
}
