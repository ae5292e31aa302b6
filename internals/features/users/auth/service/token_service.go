// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	userModel "attendku_backend/internals/features/users/user/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var ErrMissingSecret = errors.New("jwt secret not configured")

// TokenIssuer menandatangani access/refresh JWT (HS256).
type TokenIssuer struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTLDefault,
		RefreshTTL:    refreshTTLDefault,
	}
}

type IssuedTokens struct {
	Access           string
	Refresh          string
	RefreshHash      string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// buildAccessClaims: klaim yang dibaca AuthMiddleware (id, role, user_name, student_code).
func buildAccessClaims(user userModel.UserModel, studentCode string, now time.Time, ttl time.Duration) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if studentCode != "" {
		claims["student_code"] = studentCode
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		// jti bikin setiap refresh unik walau diterbitkan di detik yang sama
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
}

func (t *TokenIssuer) Issue(user userModel.UserModel, studentCode string, now time.Time) (*IssuedTokens, error) {
	if t.AccessSecret == "" || t.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		buildAccessClaims(user, studentCode, now, t.AccessTTL)).SignedString([]byte(t.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access: %w", err)
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		buildRefreshClaims(user.ID, now, t.RefreshTTL)).SignedString([]byte(t.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh: %w", err)
	}
	return &IssuedTokens{
		Access:           access,
		Refresh:          refresh,
		RefreshHash:      t.RefreshHash(refresh),
		AccessExpiresAt:  now.Add(t.AccessTTL),
		RefreshExpiresAt: now.Add(t.RefreshTTL),
	}, nil
}

// RefreshHash: HMAC-SHA256 hex, yang disimpan di DB hanya hash ini.
func (t *TokenIssuer) RefreshHash(token string) string {
	m := hmac.New(sha256.New, []byte(t.RefreshSecret))
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}

// ParseRefresh memverifikasi signature + exp refresh token dan mengembalikan user id.
func (t *TokenIssuer) ParseRefresh(raw string) (uuid.UUID, error) {
	if t.RefreshSecret == "" {
		return uuid.Nil, ErrMissingSecret
	}
	tok, err := jwt.Parse(raw, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.RefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, errors.New("invalid refresh token")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, errors.New("not a refresh token")
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}

// AccessExpiry membaca exp access token tanpa validasi klaim (dipakai saat logout).
func (t *TokenIssuer) AccessExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(t.AccessSecret), nil
	}); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0).UTC(), true
}
