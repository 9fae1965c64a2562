package observability

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const redactedPlaceholder = "********"

var redactedFields = []string{"password", "currentPassword", "newPassword"}

// RequestLogger logs every request with method, path, status and latency.
// JSON bodies are echoed at debug level with credential fields redacted.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if logger.Core().Enabled(zap.DebugLevel) {
			if body := redactBody(c.Body()); body != "" {
				logger.Debug("request body",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("body", body))
			}
		}

		err := c.Next()

		status := c.Response().StatusCode()
		duration := time.Since(start)
		metrics.RecordRequest(c.Path(), c.Method(), status, duration)
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration))
		return err
	}
}

func redactBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, field := range redactedFields {
		if _, ok := body[field]; ok {
			body[field] = redactedPlaceholder
		}
	}
	out, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return string(out)
}
