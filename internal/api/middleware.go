// internal/api/middleware.go
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLogging assigns each request an ID, echoes it in the response
// header, and logs one line per request.
func requestLogging(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(requestIDHeader, requestID)
			c.Set("requestId", requestID)

			start := time.Now()
			err := next(c)

			fields := map[string]interface{}{
				"requestId": requestID,
				"method":    c.Request().Method,
				"path":      c.Request().URL.Path,
				"status":    c.Response().Status,
				"duration":  time.Since(start).String(),
			}
			if err != nil {
				fields["error"] = err.Error()
				log.Error("request failed", fields)
				return err
			}
			log.Info("request handled", fields)
			return nil
		}
	}
}
