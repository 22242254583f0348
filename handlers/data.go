package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FetchData runs one ingestion pass synchronously and returns its report.
// Fetch failures fall back to generation, so the run itself never errors.
func (h *Handler) FetchData(c echo.Context) error {
	res := h.fetch.Run(c.Request().Context())
	return c.JSON(http.StatusOK, res)
}

// GenerateData populates the store with sample racing data.
func (h *Handler) GenerateData(c echo.Context) error {
	report := h.gen.Run(c.Request().Context())
	if !report.Success {
		return c.JSON(http.StatusInternalServerError, report)
	}
	return c.JSON(http.StatusOK, report)
}

// DataStatus reports the last fetch outcome, data freshness and row counts.
func (h *Handler) DataStatus(c echo.Context) error {
	status, err := h.fetch.Status(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, status)
}
