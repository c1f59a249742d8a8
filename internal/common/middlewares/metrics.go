package middlewares

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
)

// Metrics mencatat jumlah dan durasi request per route (pola path, bukan URL mentah).
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
