// file: internals/features/school/subjects/controller/subject_controller.go
package controller

import (
	"bytes"
	"log"

	"attendku_backend/internals/features/school/subjects/dto"
	"attendku_backend/internals/features/school/subjects/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectsController struct {
	DB        *gorm.DB
	Service   *service.SubjectService
	Validator *validator.Validate
}

func NewSubjectsController(db *gorm.DB) *SubjectsController {
	return &SubjectsController{DB: db, Service: service.New(db), Validator: helper.NewValidator()}
}

// CREATE
// POST /api/a/subjects
func (h *SubjectsController) CreateSubject(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	sub, err := h.Service.Create(c.UserContext(), teacherID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] subject %q dibuat oleh %s", sub.SubjectName, teacherID)
	return helper.JsonCreated(c, "Subject added successfully", dto.FromModel(*sub))
}

// GET /api/a/subjects → subject milik teacher login
func (h *SubjectsController) ListMine(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	list, err := h.Service.ListByTeacher(c.UserContext(), teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Subjects loaded", dto.FromModels(list), nil)
}

// GET /api/u/subjects
func (h *SubjectsController) ListAll(c *fiber.Ctx) error {
	list, err := h.Service.ListAll(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Subjects loaded", dto.FromModels(list), nil)
}

// DELETE /api/a/subjects/:id
func (h *SubjectsController) DeleteSubject(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id, teacherID); err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] subject %s dihapus oleh %s", id, teacherID)
	return helper.JsonDeleted(c, "Subject deleted successfully", fiber.Map{"id": id})
}

// GET /api/a/subjects/:id/attendance
func (h *SubjectsController) Attendance(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	_, rows, err := h.Service.Attendance(c.UserContext(), id, teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Attendance loaded", rows, nil)
}

// GET /api/a/subjects/:id/attendance.csv
func (h *SubjectsController) AttendanceCSV(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	sub, rows, err := h.Service.Attendance(c.UserContext(), id, teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var buf bytes.Buffer
	if err := service.WriteAttendanceCSV(&buf, rows); err != nil {
		log.Printf("[ERROR] tulis CSV subject %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build CSV")
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+service.CSVFilename(sub.SubjectName))
	return c.Send(buf.Bytes())
}

// GET /api/a/students-subjects
func (h *SubjectsController) StudentsSubjects(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	out, err := h.Service.StudentsAndSubjects(c.UserContext(), teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
