// file: internals/features/school/analytics/controller/analytics_controller.go
package controller

import (
	"attendku_backend/internals/features/school/analytics/service"
	helper "attendku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// GET /api/a/analytics
func (h *AnalyticsController) Summary(c *fiber.Ctx) error {
	sum, err := service.Compute(c.UserContext(), h.DB)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Analytics loaded", sum)
}
