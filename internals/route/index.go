// file: internals/route/index.go
package routes

import (
	"log"

	"attendku_backend/internals/configs"
	authMiddleware "attendku_backend/internals/middlewares/auth"
	routeDetails "attendku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig) {
	BaseRoutes(app, db)

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app.Group("/api/auth"), db)

	// ===================== PRIVATE (semua role login) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ===================== ADMIN (teacher/admin, dicek per route) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db))

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(private, admin, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolRoutes(private, admin, db, cfg)
}
