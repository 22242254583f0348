package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/onharness/harnessapi/metrics"
	"github.com/onharness/harnessapi/middleware"
)

func runRequest(t *testing.T, handler echo.HandlerFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return middleware.Metrics()(handler)(c)
}

func counterValue(method, status string) float64 {
	return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(method, status))
}

func TestMetricsCountsSuccess(t *testing.T) {
	before := counterValue(http.MethodGet, "200")

	err := runRequest(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	assert.NoError(t, err)
	assert.Equal(t, before+1, counterValue(http.MethodGet, "200"))
}

func TestMetricsCountsHTTPErrorByCode(t *testing.T) {
	before := counterValue(http.MethodGet, "404")

	err := runRequest(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})
	assert.Error(t, err)
	assert.Equal(t, before+1, counterValue(http.MethodGet, "404"))
}

func TestMetricsCountsPlainErrorAs500(t *testing.T) {
	// An unhandled error leaves the unwritten response at 200; echo will
	// render it as a 500 and the counter must agree.
	before := counterValue(http.MethodGet, "500")

	err := runRequest(t, func(c echo.Context) error {
		return errors.New("boom")
	})
	assert.Error(t, err)
	assert.Equal(t, before+1, counterValue(http.MethodGet, "500"))
}
