// internals/features/school/attendance/repository/gorm_store.go
package repository

import (
	"context"
	"errors"

	attModel "attendku_backend/internals/features/school/attendance/model"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormStore struct {
	DB *gorm.DB

	// nowSQL: ekspresi "sekarang" untuk cek expiry; test bisa membekukannya.
	nowSQL string
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db, nowSQL: dbtime.NowSQL(db)}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) CreateSession(ctx context.Context, m *attModel.AttendanceSessionModel) error {
	err := s.DB.WithContext(ctx).Create(m).Error
	if helper.IsDuplicateKey(err) {
		return ErrDuplicateToken
	}
	return err
}

func (s *GormStore) StudentExists(ctx context.Context, studentCode string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&userModel.StudentModel{}).
		Where("student_code = ?", studentCode).
		Limit(1).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) FindValidSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error) {
	var m attModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).
		Where("attendance_session_token = ? AND attendance_session_is_active = ?", token, true).
		Where(dbtime.NotPassedAt(s.DB, "attendance_session_expiry_at", s.nowSQL)).
		Take(&m).Error
	return orNil(&m, err)
}

func (s *GormStore) FindActiveSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error) {
	var m attModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).
		Where("attendance_session_token = ? AND attendance_session_is_active = ?", token, true).
		Take(&m).Error
	return orNil(&m, err)
}

func (s *GormStore) MarkExists(ctx context.Context, studentCode string, sessionID uuid.UUID) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&attModel.AttendanceMarkModel{}).
		Where("attendance_mark_student_code = ? AND attendance_mark_session_id = ?", studentCode, sessionID).
		Limit(1).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) CreateMark(ctx context.Context, m *attModel.AttendanceMarkModel) error {
	err := s.DB.WithContext(ctx).Create(m).Error
	if helper.IsDuplicateKey(err) {
		return ErrDuplicateMark
	}
	return err
}

func orNil(m *attModel.AttendanceSessionModel, err error) (*attModel.AttendanceSessionModel, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
