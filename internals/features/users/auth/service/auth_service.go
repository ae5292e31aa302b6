// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/users/auth/dto"
	authHelper "attendku_backend/internals/features/users/auth/helper"
	authModel "attendku_backend/internals/features/users/auth/model"
	authRepo "attendku_backend/internals/features/users/auth/repository"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/apperror"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoogleVerifier memverifikasi Google ID token dan mengembalikan email pemiliknya.
type GoogleVerifier func(idToken string) (email string, err error)

// NewGoogleVerifier: verifikasi signature + audience pakai sertifikat Google.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(idToken string) (string, error) {
		if clientID == "" {
			return "", errors.New("google login disabled")
		}
		v := googleAuthIDTokenVerifier.Verifier{}
		if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
			return "", err
		}
		claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
		if err != nil {
			return "", err
		}
		return claimSet.Email, nil
	}
}

type AuthService struct {
	DB           *gorm.DB
	Tokens       *TokenIssuer
	VerifyGoogle GoogleVerifier
	Now          func() time.Time
}

func NewAuthService(db *gorm.DB, tokens *TokenIssuer, google GoogleVerifier) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, VerifyGoogle: google, Now: func() time.Time { return time.Now().UTC() }}
}

/* ==========================
   REGISTER
========================== */

// Register membuat user + profil role dalam satu transaksi.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterRequest) (*userModel.UserModel, error) {
	taken, err := authRepo.UsernameOrEmailTaken(ctx, s.DB, in.Username, in.Email)
	if err != nil {
		return nil, apperror.Storage("Registration failed", err)
	}
	if taken {
		return nil, apperror.Conflict("Username or email already exists")
	}
	switch in.Role {
	case constants.RoleStudent:
		if taken, err = authRepo.StudentCodeTaken(ctx, s.DB, in.StudentID); err != nil {
			return nil, apperror.Storage("Registration failed", err)
		} else if taken {
			return nil, apperror.Conflict("Student ID already exists")
		}
	case constants.RoleTeacher:
		if taken, err = authRepo.TeacherCodeTaken(ctx, s.DB, in.TeacherID); err != nil {
			return nil, apperror.Storage("Registration failed", err)
		} else if taken {
			return nil, apperror.Conflict("Teacher ID already exists")
		}
	}

	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Storage("Failed to hash password", err)
	}

	user := &userModel.UserModel{
		UserName: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		IsActive: true,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		switch in.Role {
		case constants.RoleStudent:
			return tx.Create(&userModel.StudentModel{
				StudentCode:   in.StudentID,
				StudentName:   in.Name,
				StudentUserID: &user.ID,
			}).Error
		case constants.RoleTeacher:
			var subject *string
			if in.Subject != "" {
				subject = &in.Subject
			}
			return tx.Create(&userModel.TeacherModel{
				TeacherCode:    in.TeacherID,
				TeacherName:    in.Name,
				TeacherSubject: subject,
				TeacherUserID:  &user.ID,
			}).Error
		}
		return nil
	})
	if err != nil {
		// request paralel bisa lolos pre-check
		if helper.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Username or email already exists")
		}
		return nil, apperror.Storage("Registration failed", err)
	}
	return user, nil
}

/* ==========================
   LOGIN
========================== */

type LoginResult struct {
	Response dto.LoginResponse
	Tokens   *IssuedTokens
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest, userAgent string) (*LoginResult, error) {
	user, err := authRepo.FindUserByUsername(ctx, s.DB, in.Username)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperror.NotFound("Username not found")
		}
		return nil, apperror.Storage("Login failed", err)
	}
	if err := authHelper.CheckPasswordHash(user.Password, in.Password); err != nil {
		return nil, apperror.Unauthorized("Invalid password")
	}
	if user.Role != in.UserType {
		return nil, apperror.Forbidden(fmt.Sprintf("Please select the correct user type. You are registered as a %s", user.Role))
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Your account has been deactivated")
	}
	return s.issue(ctx, user, userAgent)
}

// LoginGoogle hanya untuk akun yang sudah terdaftar (email sama); tidak auto-register.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken, userAgent string) (*LoginResult, error) {
	if s.VerifyGoogle == nil {
		return nil, apperror.Unauthorized("Google login is not configured")
	}
	email, err := s.VerifyGoogle(idToken)
	if err != nil || email == "" {
		return nil, apperror.Unauthorized("Invalid Google ID Token")
	}
	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperror.NotFound("No account registered with this Google email")
		}
		return nil, apperror.Storage("Login failed", err)
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Your account has been deactivated")
	}
	return s.issue(ctx, user, userAgent)
}

func (s *AuthService) issue(ctx context.Context, user *userModel.UserModel, userAgent string) (*LoginResult, error) {
	resp, studentCode, err := s.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	tokens, err := s.Tokens.Issue(*user, studentCode, now)
	if err != nil {
		return nil, apperror.Storage("Failed to create token", err)
	}

	rt := &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokens.RefreshHash,
		ExpiresAt: tokens.RefreshExpiresAt,
	}
	if userAgent != "" {
		rt.UserAgent = &userAgent
	}
	if err := authRepo.CreateRefreshToken(ctx, s.DB, rt); err != nil {
		return nil, apperror.Storage("Failed to store refresh token", err)
	}

	return &LoginResult{
		Response: dto.LoginResponse{User: *resp, AccessToken: tokens.Access},
		Tokens:   tokens,
	}, nil
}

/* ==========================
   REFRESH (rotate)
========================== */

func (s *AuthService) Refresh(ctx context.Context, rawRefresh, userAgent string) (*LoginResult, error) {
	if rawRefresh == "" {
		return nil, apperror.Unauthorized("Refresh token missing")
	}
	userID, err := s.Tokens.ParseRefresh(rawRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Refresh token invalid")
	}

	now := s.Now()
	hash := s.Tokens.RefreshHash(rawRefresh)
	if _, err := authRepo.FindActiveRefreshToken(ctx, s.DB, hash, now); err != nil {
		if helper.IsNotFound(err) {
			return nil, apperror.Unauthorized("Refresh token unknown or revoked")
		}
		return nil, apperror.Storage("Failed to refresh token", err)
	}

	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Storage("Failed to refresh token", err)
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Your account has been deactivated")
	}

	if err := authRepo.RevokeRefreshToken(ctx, s.DB, hash, now); err != nil {
		log.Printf("[WARN] revoke refresh lama gagal: %v", err)
	}
	return s.issue(ctx, user, userAgent)
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist access token sampai exp-nya lewat, lalu revoke refresh token.
func (s *AuthService) Logout(ctx context.Context, accessToken, rawRefresh string) error {
	now := s.Now()
	if accessToken != "" {
		until := now.Add(time.Minute)
		if exp, ok := s.Tokens.AccessExpiry(accessToken); ok && exp.After(now) {
			until = exp.Add(time.Minute)
		}
		if err := authRepo.BlacklistToken(ctx, s.DB, accessToken, until); err != nil {
			return apperror.Storage("Logout failed", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies")
	}

	if rawRefresh != "" {
		if err := authRepo.RevokeRefreshToken(ctx, s.DB, s.Tokens.RefreshHash(rawRefresh), now); err != nil {
			log.Printf("[WARN] revoke refresh gagal: %v", err)
		}
	}
	return nil
}

/* ==========================
   ME
========================== */

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Storage("Failed to load user", err)
	}
	resp, _, err := s.userResponse(ctx, user)
	return resp, err
}

// userResponse menggabungkan user + profil role; studentCode untuk klaim JWT.
func (s *AuthService) userResponse(ctx context.Context, user *userModel.UserModel) (*dto.UserResponse, string, error) {
	resp := &dto.UserResponse{
		ID:       user.ID.String(),
		UserName: user.UserName,
		Email:    user.Email,
		Role:     user.Role,
		Name:     user.UserName,
	}

	switch user.Role {
	case constants.RoleStudent:
		st, err := authRepo.FindStudentByUserID(ctx, s.DB, user.ID)
		if err != nil {
			return nil, "", apperror.Storage("Failed to load student profile", err)
		}
		if st == nil {
			return resp, "", nil
		}
		resp.Name = st.StudentName
		resp.StudentID = &st.StudentCode
		resp.Division = st.StudentDivision
		resp.AcademicYear = st.StudentAcademicYear
		return resp, st.StudentCode, nil
	case constants.RoleTeacher:
		t, err := authRepo.FindTeacherByUserID(ctx, s.DB, user.ID)
		if err != nil {
			return nil, "", apperror.Storage("Failed to load teacher profile", err)
		}
		if t != nil {
			resp.Name = t.TeacherName
			resp.TeacherID = &t.TeacherCode
			resp.Subject = t.TeacherSubject
		}
	}
	return resp, "", nil
}
