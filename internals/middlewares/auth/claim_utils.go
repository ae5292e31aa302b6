// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	helper "attendku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errUserInactive = errors.New("user inactive")

/* ======== Extractors ======== */

// extractBearerToken: header Authorization, fallback cookie access_token.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
			auth = "Bearer " + tok
		}
	}
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, now time.Time, skew time.Duration) error {
	var expUnix int64
	switch t := claims["exp"].(type) {
	case nil:
		return errors.New("token has no exp")
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return errors.New("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type %T", t)
	}

	exp := time.Unix(expUnix, 0).UTC()
	if now.UTC().After(exp.Add(skew)) {
		return fmt.Errorf("token expired at %v", exp)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	s, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, errors.New("no user id")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user struct {
		IsActive bool
	}
	if err := db.Table("users").Select("is_active").Where("id = ?", userID).Take(&user).Error; err != nil {
		return err
	}
	if !user.IsActive {
		return errUserInactive
	}
	return nil
}

/* ======== Store claims to Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, userID uuid.UUID, claims jwt.MapClaims) {
	c.Locals(helper.LocUserID, userID.String())
	if role, ok := claims["role"].(string); ok {
		c.Locals(helper.LocRole, strings.ToLower(strings.TrimSpace(role)))
	}
	if name, ok := claims["user_name"].(string); ok {
		c.Locals(helper.LocUserName, name)
	}
	if code, ok := claims["student_code"].(string); ok && strings.TrimSpace(code) != "" {
		c.Locals(helper.LocStudentCode, strings.TrimSpace(code))
	}
}
