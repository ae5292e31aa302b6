// file: internals/features/school/subjects/route/subject_route.go
package route

import (
	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/subjects/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubjectAdminRoutes: /api/a, khusus teacher (subject selalu milik teacher pembuat).
func SubjectAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubjectsController(db)
	teacherOnly := authMiddleware.OnlyRoles(constants.RoleErrorTeacherOnly("subjects"), constants.TeacherOnly...)

	g := r.Group("/subjects", teacherOnly)
	g.Post("/", ctl.CreateSubject)
	g.Get("/", ctl.ListMine)
	g.Delete("/:id", ctl.DeleteSubject)
	g.Get("/:id/attendance", ctl.Attendance)
	g.Get("/:id/attendance.csv", ctl.AttendanceCSV)

	r.Get("/students-subjects", teacherOnly, ctl.StudentsSubjects)
}

// SubjectUserRoutes: /api/u
func SubjectUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubjectsController(db)
	r.Get("/subjects", ctl.ListAll)
}
