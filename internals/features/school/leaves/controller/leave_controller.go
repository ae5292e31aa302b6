// file: internals/features/school/leaves/controller/leave_controller.go
package controller

import (
	"mime/multipart"
	"path/filepath"

	"attendku_backend/internals/features/school/leaves/dto"
	"attendku_backend/internals/features/school/leaves/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaveController struct {
	DB        *gorm.DB
	Service   *service.LeaveService
	Validator *validator.Validate
}

func NewLeaveController(db *gorm.DB, uploadDir string) *LeaveController {
	return &LeaveController{DB: db, Service: service.New(db, uploadDir), Validator: helper.NewValidator()}
}

/*
=========================================================
SUBMIT (student, multipart)
POST /api/u/leaves
=========================================================
*/
func (h *LeaveController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.SubmitLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form data")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	// attachment opsional
	var fh *multipart.FileHeader
	if f, err := c.FormFile("attachment"); err == nil && f.Filename != "" {
		fh = f
	}

	row, err := h.Service.Submit(c.UserContext(), userID, req, fh)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Leave application submitted successfully", dto.FromModel(*row))
}

// GET /api/u/leaves/me
func (h *LeaveController) ListMine(c *fiber.Ctx) error {
	code := helper.GetStudentCode(c)
	if code == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	list, err := h.Service.ListForStudent(c.UserContext(), code)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Leave applications loaded", dto.FromModels(list), nil)
}

// GET /api/a/leaves
func (h *LeaveController) ListAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	list, total, err := h.Service.ListAll(c.UserContext(), p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(list))
	return helper.JsonList(c, "Leave applications loaded", dto.FromModels(list), &pg)
}

// GET /api/a/subjects/:id/leaves (guru pemilik subject)
func (h *LeaveController) ListForSubject(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	subjectID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 500)
	list, total, err := h.Service.ListForSubject(c.UserContext(), subjectID, teacherID, p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(list))
	return helper.JsonList(c, "Leave applications loaded", dto.FromModels(list), &pg)
}

// PATCH /api/a/leaves/:id/status
func (h *LeaveController) UpdateStatus(c *fiber.Ctx) error {
	reviewer, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.UpdateLeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	row, err := h.Service.UpdateStatus(c.UserContext(), id, req.Status, reviewer)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Application "+req.Status+" successfully", dto.FromModel(*row))
}

// GET /api/a/leaves/:id/attachment
func (h *LeaveController) DownloadAttachment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	path, err := h.Service.AttachmentPath(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.Download(path, filepath.Base(path))
}
