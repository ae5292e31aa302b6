// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"log"

	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/attendance/dto"
	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/features/school/attendance/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB        *gorm.DB
	Service   *service.Service
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB, svc *service.Service) *AttendanceController {
	return &AttendanceController{DB: db, Service: svc, Validator: helper.NewValidator()}
}

/*
=========================================================
ISSUE
POST /api/a/attendance/sessions
=========================================================
*/
func (h *AttendanceController) IssueSession(c *fiber.Ctx) error {
	var req dto.IssueSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	in := service.IssueInput{
		Subject:     req.Subject,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		TTLSeconds:  req.TTLSeconds,
	}
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		in.CreatedBy = &uid
	}

	sess, err := h.Service.Issue(c.UserContext(), in)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	qr, err := helper.QRCodeDataURI(sess.Token)
	if err != nil {
		// session sudah tersimpan; client masih bisa render QR sendiri dari token
		log.Printf("[ERROR] render QR %s: %v", sess.Token, err)
	}
	return helper.JsonCreated(c, "QR session created", dto.NewIssueSessionResponse(sess, qr))
}

/*
=========================================================
DISPLAY
GET /api/a/attendance/sessions/:token/qr
=========================================================
*/
func (h *AttendanceController) DisplaySession(c *fiber.Ctx) error {
	d, err := h.Service.Display(c.UserContext(), c.Params("token"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	qr, err := helper.QRCodeDataURI(d.Token)
	if err != nil {
		log.Printf("[ERROR] render QR %s: %v", d.Token, err)
	}
	return helper.JsonOK(c, "QR session loaded", dto.DisplayResponse{Display: d, QRCode: qr})
}

/*
=========================================================
MARK
POST /api/u/attendance/mark
Student boleh mengosongkan student_id (diambil dari token login),
tapi tidak boleh absen atas nama student lain.
=========================================================
*/
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if helper.GetRole(c) == constants.RoleStudent {
		own := helper.GetStudentCode(c)
		if own == "" {
			// token student tanpa profil student
			return helper.JsonError(c, fiber.StatusForbidden, "Student profile not found for this account")
		}
		if req.StudentID == "" {
			req.StudentID = own
		} else if req.StudentID != own {
			return helper.JsonError(c, fiber.StatusForbidden, "You can only mark your own attendance")
		}
	}
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := h.Service.Mark(c.UserContext(), req.StudentID, req.Token)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

/*
=========================================================
LIST
GET /api/a/attendance?page=&per_page=
=========================================================
*/
func (h *AttendanceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := attRepo.ListMarks(c.UserContext(), h.DB, p)
	if err != nil {
		log.Printf("[ERROR] list attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance")
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Attendance loaded", rows, &pg)
}
