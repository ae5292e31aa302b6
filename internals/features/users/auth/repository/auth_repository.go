// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "attendku_backend/internals/features/users/auth/model"
	userModel "attendku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(ctx context.Context, db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("user_name = ?", username).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameOrEmailTaken: cek sebelum insert supaya pesan konflik spesifik.
func UsernameOrEmailTaken(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_name = ? OR LOWER(email) = LOWER(?)", username, email).
		Count(&n).Error
	return n > 0, err
}

func StudentCodeTaken(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.StudentModel{}).Where("student_code = ?", code).Count(&n).Error
	return n > 0, err
}

func TeacherCodeTaken(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.TeacherModel{}).Where("teacher_code = ?", code).Count(&n).Error
	return n > 0, err
}

// FindStudentByUserID: nil, nil kalau user belum punya profil student.
func FindStudentByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.StudentModel, error) {
	var s userModel.StudentModel
	err := db.WithContext(ctx).Where("student_user_id = ?", userID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func FindTeacherByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.TeacherModel, error) {
	var t userModel.TeacherModel
	err := db.WithContext(ctx).Where("teacher_user_id = ?", userID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(ctx context.Context, db *gorm.DB, rt *authModel.RefreshToken) error {
	return db.WithContext(ctx).Create(rt).Error
}

// FindActiveRefreshToken: belum di-revoke dan belum expired (clock aplikasi).
func FindActiveRefreshToken(ctx context.Context, db *gorm.DB, hash string, now time.Time) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, now).
		Take(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func RevokeRefreshToken(ctx context.Context, db *gorm.DB, hash string, now time.Time) error {
	return db.WithContext(ctx).Model(&authModel.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", now).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempotent: token yang sama tidak error kedua kalinya.
func BlacklistToken(ctx context.Context, db *gorm.DB, token string, expiredAt time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&authModel.TokenBlacklist{Token: token, ExpiredAt: expiredAt}).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Count(&n).Error
	return n > 0, err
}

// CleanupExpiredBlacklist menghapus (soft delete) maksimal `limit` baris yang expired sebelum `before`.
func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time, limit int) (int64, error) {
	var ids []uint
	if err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("expired_at < ?", before).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
