// file: internals/features/school/analytics/route/analytics_route.go
package route

import (
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/analytics/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AnalyticsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnalyticsController(db)
	r.Get("/analytics",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("analytics"), constants.TeacherAndAbove...),
		ctl.Summary,
	)
}
