package details

import (
	authRoute "attendku_backend/internals/features/users/auth/route"
	userRoute "attendku_backend/internals/features/users/user/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserRoutes(private, admin fiber.Router, db *gorm.DB) {
	// /api/u/me
	authRoute.AuthUserRoutes(private, db)

	// /api/a/students, /api/a/users
	userRoute.UserAdminRoutes(admin, db)
}
