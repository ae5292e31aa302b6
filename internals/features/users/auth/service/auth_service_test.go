package service

import (
	"context"
	"errors"
	"testing"

	"attendku_backend/internals/databases/dbtest"
	"attendku_backend/internals/features/users/auth/dto"
	authRepo "attendku_backend/internals/features/users/auth/repository"
	"attendku_backend/internals/helpers/apperror"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	db := dbtest.NewSQLite(t)
	svc := NewAuthService(db, NewTokenIssuer("access-secret", "refresh-secret"), nil)
	return svc
}

func wantKind(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	ae, ok := apperror.As(err)
	if !ok {
		t.Fatalf("expected apperror %s %q, got %v", kind, msg, err)
	}
	if ae.Kind != kind || (msg != "" && ae.Message != msg) {
		t.Fatalf("expected %s %q, got %s %q", kind, msg, ae.Kind, ae.Message)
	}
}

func registerStudent(t *testing.T, svc *AuthService, username, code string) {
	t.Helper()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: username, Email: username + "@school.test", Password: "secret123",
		Role: "student", Name: "Student " + code, StudentID: code,
	})
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerStudent(t, svc, "asha", "S001")

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "asha", Email: "other@school.test", Password: "secret123", Role: "student", Name: "X", StudentID: "S002",
	})
	wantKind(t, err, apperror.KindConflict, "Username or email already exists")

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "bima", Email: "bima@school.test", Password: "secret123", Role: "student", Name: "Bima", StudentID: "S001",
	})
	wantKind(t, err, apperror.KindConflict, "Student ID already exists")

	if _, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "tara", Email: "tara@school.test", Password: "secret123", Role: "teacher", Name: "Tara", TeacherID: "T001", Subject: "Math",
	}); err != nil {
		t.Fatalf("register teacher: %v", err)
	}
	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "tom", Email: "tom@school.test", Password: "secret123", Role: "teacher", Name: "Tom", TeacherID: "T001",
	})
	wantKind(t, err, apperror.KindConflict, "Teacher ID already exists")
}

func TestLoginGuards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerStudent(t, svc, "asha", "S001")

	tests := []struct {
		name string
		in   dto.LoginRequest
		kind apperror.Kind
		msg  string
	}{
		{"unknown user", dto.LoginRequest{Username: "ghost", Password: "x", UserType: "student"}, apperror.KindNotFound, "Username not found"},
		{"bad password", dto.LoginRequest{Username: "asha", Password: "wrong", UserType: "student"}, apperror.KindUnauthorized, "Invalid password"},
		{"wrong type", dto.LoginRequest{Username: "asha", Password: "secret123", UserType: "teacher"}, apperror.KindForbidden,
			"Please select the correct user type. You are registered as a student"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.in, "")
			wantKind(t, err, tt.kind, tt.msg)
		})
	}

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "asha", Password: "secret123", UserType: "student"}, "go-test")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Response.AccessToken == "" || res.Tokens.Refresh == "" {
		t.Fatal("tokens not issued")
	}
	if res.Response.User.StudentID == nil || *res.Response.User.StudentID != "S001" {
		t.Errorf("student_id = %v", res.Response.User.StudentID)
	}
	if res.Response.User.Name != "Student S001" {
		t.Errorf("name = %q", res.Response.User.Name)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerStudent(t, svc, "asha", "S001")

	first, err := svc.Login(ctx, dto.LoginRequest{Username: "asha", Password: "secret123", UserType: "student"}, "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := svc.Refresh(ctx, first.Tokens.Refresh, "")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.Tokens.Refresh == first.Tokens.Refresh {
		t.Fatal("refresh token was not rotated")
	}

	_, err = svc.Refresh(ctx, first.Tokens.Refresh, "")
	wantKind(t, err, apperror.KindUnauthorized, "Refresh token unknown or revoked")

	_, err = svc.Refresh(ctx, "garbage", "")
	wantKind(t, err, apperror.KindUnauthorized, "Refresh token invalid")
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerStudent(t, svc, "asha", "S001")

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "asha", Password: "secret123", UserType: "student"}, "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, res.Tokens.Access, res.Tokens.Refresh); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	// idempotent
	if err := svc.Logout(ctx, res.Tokens.Access, res.Tokens.Refresh); err != nil {
		t.Fatalf("second Logout: %v", err)
	}

	listed, err := authRepo.IsBlacklisted(ctx, svc.DB, res.Tokens.Access)
	if err != nil || !listed {
		t.Fatalf("IsBlacklisted = %v, %v", listed, err)
	}
	_, err = svc.Refresh(ctx, res.Tokens.Refresh, "")
	wantKind(t, err, apperror.KindUnauthorized, "")
}

func TestLoginGoogleMatchesExistingEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerStudent(t, svc, "asha", "S001")

	svc.VerifyGoogle = func(idToken string) (string, error) {
		switch idToken {
		case "ok":
			return "ASHA@school.test", nil
		case "stranger":
			return "nobody@school.test", nil
		}
		return "", errors.New("bad token")
	}

	res, err := svc.LoginGoogle(ctx, "ok", "")
	if err != nil {
		t.Fatalf("LoginGoogle: %v", err)
	}
	if res.Response.User.UserName != "asha" {
		t.Errorf("user = %q", res.Response.User.UserName)
	}

	_, err = svc.LoginGoogle(ctx, "stranger", "")
	wantKind(t, err, apperror.KindNotFound, "")
	_, err = svc.LoginGoogle(ctx, "forged", "")
	wantKind(t, err, apperror.KindUnauthorized, "Invalid Google ID Token")
}

func TestTokenIssuerRejectsMissingSecret(t *testing.T) {
	tokens := NewTokenIssuer("", "")
	if _, err := tokens.ParseRefresh("x"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("err = %v", err)
	}
	if exp, ok := NewTokenIssuer("a", "b").AccessExpiry("not-a-jwt"); ok || !exp.IsZero() {
		t.Fatalf("AccessExpiry on garbage = %v, %v", exp, ok)
	}
}
