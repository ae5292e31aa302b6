package controller

import (
	"time"

	"attendku_backend/internals/features/users/auth/dto"
	"attendku_backend/internals/features/users/auth/service"
	helper "attendku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB        *gorm.DB
	Service   *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB, svc *service.AuthService) *AuthController {
	return &AuthController{DB: db, Service: svc, Validator: helper.NewValidator()}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(ac.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	user, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful! Please login.", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"role":      user.Role,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(ac.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := ac.Service.Login(c.UserContext(), req, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "Login successful", res.Response)
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(ac.Validator, &req); err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := ac.Service.LoginGoogle(c.UserContext(), req.IDToken, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "Login successful", res.Response)
}

// POST /api/auth/refresh-token (cookie refresh_token, fallback body)
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = body.RefreshToken
	}

	res, err := ac.Service.Refresh(c.UserContext(), raw, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "Token refreshed", fiber.Map{"access_token": res.Tokens.Access})
}

// POST /api/auth/logout (idempotent)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Service.Logout(c.UserContext(), helper.GetRawAccessToken(c), helper.GetRefreshTokenFromCookie(c)); err != nil {
		return helper.JsonAppError(c, err)
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/u/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	me, err := ac.Service.Me(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "User loaded", me)
}

/* ========== cookies ========== */

func setAuthCookies(c *fiber.Ctx, t *service.IssuedTokens) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    t.Access,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  t.AccessExpiresAt,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    t.Refresh,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/api/auth",
		Expires:  t.RefreshExpiresAt,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     path,
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}
