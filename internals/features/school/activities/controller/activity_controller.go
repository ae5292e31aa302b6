// file: internals/features/school/activities/controller/activity_controller.go
package controller

import (
	"log"

	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/school/activities/dto"
	"attendku_backend/internals/features/school/activities/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB        *gorm.DB
	Service   *service.ActivityService
	Validator *validator.Validate
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db, Service: service.New(db), Validator: helper.NewValidator()}
}

// POST /api/a/activities
func (h *ActivityController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(h.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	row, err := h.Service.Create(c.UserContext(), userID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] activity %q dibuat oleh %s", row.ActivityTitle, userID)
	return helper.JsonCreated(c, "Activity created successfully", dto.FromModel(*row))
}

// GET /api/u/activities
func (h *ActivityController) List(c *fiber.Ctx) error {
	code := ""
	if helper.GetRole(c) == constants.RoleStudent {
		code = helper.GetStudentCode(c)
	}
	list, err := h.Service.List(c.UserContext(), code)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Activities loaded", list, nil)
}

// POST /api/u/activities/:id/join
func (h *ActivityController) Join(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p, err := h.Service.Join(c.UserContext(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Successfully joined activity", p)
}

// GET /api/u/activities/:id/certificate
func (h *ActivityController) Certificate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	cert, err := h.Service.Certificate(c.UserContext(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Certificate loaded", cert)
}
