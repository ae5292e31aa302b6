// file: internals/features/school/leaves/route/leave_route.go
package route

import (
	"attendku_backend/internals/configs"
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/leaves/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func uploadDir(cfg *configs.AppConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.UploadDir
}

// LeaveAdminRoutes: /api/a/leaves (teacher & admin), /api/a/subjects/:id/leaves (teacher)
func LeaveAdminRoutes(r fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	ctl := controller.NewLeaveController(db, uploadDir(cfg))

	g := r.Group("/leaves",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("leave applications"), constants.TeacherAndAbove...),
	)
	g.Get("/", ctl.ListAll)
	g.Patch("/:id/status", ctl.UpdateStatus)
	g.Get("/:id/attachment", ctl.DownloadAttachment)

	r.Get("/subjects/:id/leaves",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacherOnly("subject leave applications"), constants.TeacherOnly...),
		ctl.ListForSubject,
	)
}

// LeaveUserRoutes: /api/u/leaves (student)
func LeaveUserRoutes(r fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	ctl := controller.NewLeaveController(db, uploadDir(cfg))

	g := r.Group("/leaves",
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("leave applications"), constants.StudentOnly...),
	)
	g.Post("/", ctl.Submit)
	g.Get("/me", ctl.ListMine)
}
