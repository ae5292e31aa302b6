// internals/route/details/school_routes.go
package details

import (
	"attendku_backend/internals/configs"
	activityRoute "attendku_backend/internals/features/school/activities/route"
	analyticsRoute "attendku_backend/internals/features/school/analytics/route"
	attendanceRoute "attendku_backend/internals/features/school/attendance/route"
	leaveRoute "attendku_backend/internals/features/school/leaves/route"
	resultRoute "attendku_backend/internals/features/school/results/route"
	subjectRoute "attendku_backend/internals/features/school/subjects/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SchoolRoutes(private, admin fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	// ===== attendance (QR) =====
	attendanceRoute.AttendanceAdminRoutes(admin, db, cfg)
	attendanceRoute.AttendanceUserRoutes(private, db, cfg)

	// ===== subjects =====
	subjectRoute.SubjectAdminRoutes(admin, db)
	subjectRoute.SubjectUserRoutes(private, db)

	// ===== leave =====
	leaveRoute.LeaveAdminRoutes(admin, db, cfg)
	leaveRoute.LeaveUserRoutes(private, db, cfg)

	// ===== activities =====
	activityRoute.ActivityAdminRoutes(admin, db)
	activityRoute.ActivityUserRoutes(private, db)

	// ===== results =====
	resultRoute.ResultAdminRoutes(admin, db)
	resultRoute.ResultUserRoutes(private, db)

	// ===== analytics =====
	analyticsRoute.AnalyticsAdminRoutes(admin, db)
}
