// file: internals/features/school/activities/route/activity_route.go
package route

import (
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/activities/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActivityAdminRoutes: /api/a/activities
func ActivityAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewActivityController(db)
	r.Post("/activities",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("activities"), constants.TeacherAndAbove...),
		ctl.Create,
	)
}

// ActivityUserRoutes: /api/u/activities
func ActivityUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewActivityController(db)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("this activity action"), constants.StudentOnly...)

	g := r.Group("/activities")
	g.Get("/", ctl.List)
	g.Post("/:id/join", studentOnly, ctl.Join)
	g.Get("/:id/certificate", studentOnly, ctl.Certificate)
}
