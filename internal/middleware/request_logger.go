package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger writes one line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo render it so the status below is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			if o := Owner(c); !o.IsZero() {
				fields = append(fields, zap.Stringer("owner", o))
			}

			switch {
			case res.Status >= 500:
				log.Error("request", fields...)
			case res.Status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}
