// file: internals/features/school/subjects/repository/subject_repository.go
package repository

import (
	"context"
	"errors"

	attModel "attendku_backend/internals/features/school/attendance/model"
	resultModel "attendku_backend/internals/features/school/results/model"
	m "attendku_backend/internals/features/school/subjects/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Create(ctx context.Context, db *gorm.DB, s *m.SubjectModel) error {
	return db.WithContext(ctx).Create(s).Error
}

// FindOwned: subject milik teacher; nil kalau tidak ada / bukan miliknya.
func FindOwned(ctx context.Context, db *gorm.DB, id, teacherUserID uuid.UUID) (*m.SubjectModel, error) {
	var s m.SubjectModel
	err := db.WithContext(ctx).
		Where("subject_id = ? AND subject_teacher_user_id = ?", id, teacherUserID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ListByTeacher(ctx context.Context, db *gorm.DB, teacherUserID uuid.UUID) ([]m.SubjectModel, error) {
	out := []m.SubjectModel{}
	err := db.WithContext(ctx).
		Where("subject_teacher_user_id = ?", teacherUserID).
		Order("subject_name ASC").
		Find(&out).Error
	return out, err
}

func ListAll(ctx context.Context, db *gorm.DB) ([]m.SubjectModel, error) {
	out := []m.SubjectModel{}
	err := db.WithContext(ctx).Order("subject_name ASC").Find(&out).Error
	return out, err
}

// DeleteCascade menghapus subject beserta session (dicocokkan lewat nama),
// mark dari session tsb, dan results. Harus dipanggil di dalam transaksi.
func DeleteCascade(tx *gorm.DB, s *m.SubjectModel) error {
	sessionIDs := tx.Model(&attModel.AttendanceSessionModel{}).
		Select("attendance_session_id").
		Where("attendance_session_subject = ?", s.SubjectName)

	if err := tx.Where("attendance_mark_session_id IN (?)", sessionIDs).
		Delete(&attModel.AttendanceMarkModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("attendance_session_subject = ?", s.SubjectName).
		Delete(&attModel.AttendanceSessionModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("result_subject_id = ?", s.SubjectID).
		Delete(&resultModel.ResultModel{}).Error; err != nil {
		return err
	}
	return tx.Delete(&m.SubjectModel{}, "subject_id = ?", s.SubjectID).Error
}
