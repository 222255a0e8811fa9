package middleware

import (
	"estate-access/logger"
	logmodel "estate-access/models/log"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger records request/response pairs through the async logger.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		entry := logmodel.Log{
			Method:       c.Method(),
			URL:          c.OriginalURL(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(c.Response().Body()),
			StatusCode:   c.Response().StatusCode(),
		}
		if actor, ok := ActorFromCtx(c); ok {
			entry.TenantID = actor.TenantID
			entry.ActorName = actor.Name
		}
		asyncLogger.Log(entry)

		return err
	}
}
