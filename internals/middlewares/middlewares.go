package middlewares

import (
	"time"

	"attendku_backend/internals/configs"
	"attendku_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares memasang middleware global sesuai urutan: recover dulu supaya panic di middleware lain tertangkap.
func SetupMiddlewares(app *fiber.App, cfg *configs.AppConfig) {
	timeout := time.Duration(cfg.RequestTimeoutSecond) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(timeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(GlobalRateLimiter())
}
