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

// Trainers returns active trainers ordered by name, with optional
// case-insensitive name search.
func (h *Handler) Trainers(c echo.Context) error {
	limit := limitParam(c, 50, 200)

	var trainers []models.Trainer
	q := h.db.NewSelect().Model(&trainers).
		Where("active").
		OrderExpr("name ASC").
		Limit(limit)

	if name := c.QueryParam("name"); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, trainers)
}

// Trainer returns a single trainer by id.
func (h *Handler) Trainer(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid trainer id")
	}

	trainer := &models.Trainer{}
	err = h.db.NewSelect().Model(trainer).
		Where("trainer_id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "trainer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, trainer)
}

// TrainerStats returns a trainer's aggregated career statistics.
func (h *Handler) TrainerStats(c echo.Context) error {
	return h.entityStats(c, stats.KindTrainer, "trainer not found")
}
