package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onharness/harnessapi/metrics"
)

// Metrics counts every completed request by method and status code. Errors
// are counted by the status echo will write for them, not the status already
// on the response.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			metrics.HTTPRequestsTotal.
				WithLabelValues(c.Request().Method, strconv.Itoa(status)).
				Inc()
			return err
		}
	}
}
