package controller

import (
	"log"
	"strings"

	"attendku_backend/internals/features/users/user/dto"
	"attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: helper.NewValidator()}
}

// GET /api/a/students?q=
func (uc *UserController) ListStudents(c *fiber.Ctx) error {
	q := uc.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(student_name) LIKE ? OR LOWER(student_code) LIKE ?", like, like)
	}

	var students []model.StudentModel
	if err := q.Order("student_name ASC").Find(&students).Error; err != nil {
		log.Println("[ERROR] Failed to fetch students:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve students")
	}
	return helper.JsonList(c, "Students fetched successfully", dto.ToStudentItems(students), nil)
}

// GET /api/a/users (admin)
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}
	var users []model.UserModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&users).Error; err != nil {
		log.Println("[ERROR] list users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	items := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserItem(u))
	}
	pg := helper.BuildPagination(total, p, len(items))
	return helper.JsonList(c, "Users fetched successfully", items, &pg)
}

// PATCH /api/a/users/:id/status (admin). User nonaktif ditolak AuthMiddleware.
func (uc *UserController) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(uc.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	if me, err := helper.GetUserIDFromToken(c); err == nil && me == id && !*req.IsActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot deactivate your own account")
	}

	res := uc.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", *req.IsActive)
	if res.Error != nil {
		log.Println("[ERROR] update user status:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	var u model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).First(&u, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	log.Printf("[INFO] user %s is_active=%v", u.UserName, u.IsActive)
	return helper.JsonUpdated(c, "User updated successfully", dto.ToUserItem(u))
}
