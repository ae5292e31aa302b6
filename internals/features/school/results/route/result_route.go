// file: internals/features/school/results/route/result_route.go
package route

import (
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/results/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResultAdminRoutes: /api/a/results (teacher)
func ResultAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewResultController(db)

	g := r.Group("/results",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacherOnly("results"), constants.TeacherOnly...),
	)
	g.Post("/", ctl.Create)
	g.Post("/upload", ctl.UploadCSV)
	g.Get("/uploads", ctl.ListUploads)
}

// ResultUserRoutes: /api/u/results (student)
func ResultUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewResultController(db)
	r.Get("/results/me",
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("results"), constants.StudentOnly...),
		ctl.ListMine,
	)
}
