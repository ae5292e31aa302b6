// file: internals/features/school/results/controller/result_controller.go
package controller

import (
	"log"
	"strings"

	"attendku_backend/internals/features/school/results/dto"
	"attendku_backend/internals/features/school/results/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxCSVBytes = 2 << 20

type ResultController struct {
	DB        *gorm.DB
	Service   *service.ResultService
	Validator *validator.Validate
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db, Service: service.New(db), Validator: helper.NewValidator()}
}

// POST /api/a/results
func (h *ResultController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	row, err := h.Service.Create(c.UserContext(), teacherID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, service.MsgResultSaved, row)
}

// POST /api/a/results/upload (multipart "file")
func (h *ResultController) UploadCSV(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Filename == "" || !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return helper.JsonError(c, fiber.StatusBadRequest, "Please upload a CSV file")
	}
	if fh.Size > maxCSVBytes {
		return helper.JsonError(c, fiber.StatusBadRequest, "CSV file too large")
	}

	f, err := fh.Open()
	if err != nil {
		log.Printf("[ERROR] buka CSV upload: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to process CSV file")
	}
	defer f.Close()

	sum, err := h.Service.UploadCSV(c.UserContext(), teacherID, fh.Filename, f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] upload nilai %s: %d masuk, %d error", fh.Filename, sum.Inserted, sum.Failed)
	return helper.JsonOK(c, service.UploadMessage(sum), sum)
}

// GET /api/a/results/uploads
func (h *ResultController) ListUploads(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	list, err := h.Service.ListUploads(c.UserContext(), teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Uploads loaded", list, nil)
}

// GET /api/u/results/me
func (h *ResultController) ListMine(c *fiber.Ctx) error {
	code := helper.GetStudentCode(c)
	if code == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	list, err := h.Service.ListForStudent(c.UserContext(), code)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Results loaded", list, nil)
}
