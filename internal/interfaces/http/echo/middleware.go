package echo

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// errorCauseKey holds the error behind a 500 response so the request log
// can report it without exposing it to the client.
const errorCauseKey = "error_cause"

// RequestLogger writes one logrus entry per request.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if tenantID := principalFrom(c).TenantID; tenantID != "" {
				entry = entry.WithField("tenant_id", tenantID)
			}
			if cause, ok := c.Get(errorCauseKey).(error); ok {
				entry.WithError(cause).Error("request failed")
				return nil
			}
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request handled")
			return nil
		},
	})
}
