package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi AuthMiddleware.
const (
	LocUserID      = "user_id"
	LocRole        = "userRole"
	LocUserName    = "user_name"
	LocStudentCode = "student_code"
)

// GetUserIDFromToken membaca user_id dari Locals.
// 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var s string
	switch t := c.Locals(LocUserID).(type) {
	case nil:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - login required")
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - login required")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - login required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
	}
	return id, nil
}

// GetRole: role dari klaim JWT ("" kalau tidak ada).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocRole).(string)
	return s
}

// GetStudentCode: nomor induk student dari klaim (hanya untuk role student).
func GetStudentCode(c *fiber.Ctx) string {
	s, _ := c.Locals(LocStudentCode).(string)
	return strings.TrimSpace(s)
}

func GetUserName(c *fiber.Ctx) string {
	s, _ := c.Locals(LocUserName).(string)
	return s
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
