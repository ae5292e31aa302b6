package details

import (
	authRoute "attendku_backend/internals/features/users/auth/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(r, db)
}
