// internals/features/school/attendance/repository/report_repository.go
package repository

import (
	"context"
	"time"

	helper "attendku_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarkRow: satu baris rekap kehadiran (join marks + students + sessions).
type MarkRow struct {
	StudentName string    `gorm:"column:student_name" json:"student_name"`
	StudentCode string    `gorm:"column:student_code" json:"student_id"`
	Subject     string    `gorm:"column:subject" json:"subject"`
	Token       string    `gorm:"column:token" json:"session_id"`
	MarkedAt    time.Time `gorm:"column:marked_at" json:"timestamp"`
}

const markRowSelect = `
	st.student_name AS student_name,
	st.student_code AS student_code,
	ses.attendance_session_subject AS subject,
	ses.attendance_session_token AS token,
	m.attendance_mark_marked_at AS marked_at`

func baseMarkQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("attendance_marks AS m").
		Joins("JOIN students st ON st.student_code = m.attendance_mark_student_code").
		Joins("JOIN attendance_sessions ses ON ses.attendance_session_id = m.attendance_mark_session_id")
}

// ListMarks: semua kehadiran, terbaru dulu.
func ListMarks(ctx context.Context, db *gorm.DB, p helper.Paging) ([]MarkRow, int64, error) {
	var total int64
	if err := baseMarkQuery(ctx, db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []MarkRow{}
	err := baseMarkQuery(ctx, db).
		Select(markRowSelect).
		Order("m.attendance_mark_marked_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Scan(&rows).Error
	return rows, total, err
}

// ListSubjectMarks: kehadiran untuk satu subject milik teacher.
// Session terhubung ke subject lewat nama (session menyimpan label subject).
func ListSubjectMarks(ctx context.Context, db *gorm.DB, subjectID, teacherUserID uuid.UUID) ([]MarkRow, error) {
	rows := []MarkRow{}
	err := baseMarkQuery(ctx, db).
		Joins("JOIN subjects sub ON sub.subject_name = ses.attendance_session_subject").
		Where("sub.subject_id = ? AND sub.subject_teacher_user_id = ?", subjectID, teacherUserID).
		Select(markRowSelect).
		Order("m.attendance_mark_marked_at DESC").
		Scan(&rows).Error
	return rows, err
}
