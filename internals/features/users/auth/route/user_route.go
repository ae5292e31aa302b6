// file: internals/features/users/auth/route/user_route.go
package route

import (
	"attendku_backend/internals/configs"
	"attendku_backend/internals/features/users/auth/controller"
	"attendku_backend/internals/features/users/auth/service"
	rateLimiter "attendku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newController(db *gorm.DB) *controller.AuthController {
	tokens := service.NewTokenIssuer(configs.JWTSecret, configs.JWTRefreshSecret)
	svc := service.NewAuthService(db, tokens, service.NewGoogleVerifier(configs.GoogleClientID))
	return controller.NewAuthController(db, svc)
}

// AuthRoutes: /api/auth (public).
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)

	r.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
	r.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	r.Post("/login-google", rateLimiter.LoginRateLimiter(), ctl.LoginGoogle)
	r.Post("/refresh-token", ctl.RefreshToken)
	r.Post("/logout", ctl.Logout)
}

// AuthUserRoutes: /api/u (sudah lewat AuthMiddleware).
func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	r.Get("/me", ctl.Me)
}
