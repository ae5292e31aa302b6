package route

import (
	"attendku_backend/internals/constants"
	userController "attendku_backend/internals/features/users/user/controller"
	authMiddleware "attendku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserAdminRoutes: /api/a
func UserAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	app.Get("/students",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("student list"), constants.TeacherAndAbove...),
		ctl.ListStudents,
	)

	users := app.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...),
	)
	users.Get("/", ctl.ListUsers)
	users.Patch("/:id/status", ctl.UpdateUserStatus)
}
