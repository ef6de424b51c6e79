// internal/infrastructure/server/middleware.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskmaster/lite/internal/infrastructure/logger"
)

// originMatcher accepts origins from allowed. An entry ending in "*"
// matches by prefix, any other entry must match exactly.
func originMatcher(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		for _, a := range allowed {
			if prefix, ok := strings.CutSuffix(a, "*"); ok {
				if strings.HasPrefix(origin, prefix) {
					return true, nil
				}
				continue
			}
			if origin == a {
				return true, nil
			}
		}
		return false, nil
	}
}

// metricsMiddleware counts and times requests by route pattern
func metricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// contextErrorHandler maps an expired or cancelled handler context to 503
func contextErrorHandler(err error, c echo.Context) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return echo.ErrServiceUnavailable.WithInternal(err)
	}
	return err
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			code = http.StatusServiceUnavailable
			msg = http.StatusText(code)
		} else {
			msg = http.StatusText(code)
		}

		if s, ok := msg.(string); ok {
			msg = map[string]string{"message": s}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
