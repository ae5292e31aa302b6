// file: internals/features/school/attendance/route/attendance_route.go
package route

import (
	"attendku_backend/internals/configs"
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/attendance/controller"
	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/features/school/attendance/service"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newController(db *gorm.DB, cfg *configs.AppConfig) *controller.AttendanceController {
	var opts []service.Option
	if cfg != nil {
		opts = append(opts, service.WithDefaultTTL(cfg.SessionDefaultTTL))
	}
	svc := service.New(attRepo.NewGormStore(db), opts...)
	return controller.NewAttendanceController(db, svc)
}

// AttendanceAdminRoutes: /api/a (teacher & admin).
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	ctl := newController(db, cfg)

	g := r.Group("/attendance",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("attendance sessions"), constants.TeacherAndAbove...),
	)
	g.Get("/", ctl.List)
	g.Post("/sessions", ctl.IssueSession)
	g.Get("/sessions/:token/qr", ctl.DisplaySession)
}

// AttendanceUserRoutes: /api/u (semua role login).
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	ctl := newController(db, cfg)

	r.Post("/attendance/mark",
		authMiddleware.OnlyRoles("", constants.AllRoles...),
		ctl.Mark,
	)
}
