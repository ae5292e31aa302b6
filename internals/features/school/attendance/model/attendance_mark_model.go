// internals/features/school/attendance/model/attendance_mark_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceMarkModel: satu student hadir di satu session.
// Unique (student_code, session_id) → dobel mark ditolak di level DB.
type AttendanceMarkModel struct {
	AttendanceMarkID          uuid.UUID `gorm:"column:attendance_mark_id;type:uuid;primaryKey" json:"attendance_mark_id"`
	AttendanceMarkStudentCode string    `gorm:"column:attendance_mark_student_code;size:50;not null;uniqueIndex:uq_attendance_marks_student_session,priority:1" json:"attendance_mark_student_code"`
	AttendanceMarkSessionID   uuid.UUID `gorm:"column:attendance_mark_session_id;type:uuid;not null;uniqueIndex:uq_attendance_marks_student_session,priority:2;index:idx_attendance_marks_session" json:"attendance_mark_session_id"`
	AttendanceMarkMarkedAt    time.Time `gorm:"column:attendance_mark_marked_at;not null;index:idx_attendance_marks_marked_at" json:"attendance_mark_marked_at"`
}

func (AttendanceMarkModel) TableName() string {
	return "attendance_marks"
}

func (m *AttendanceMarkModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceMarkID == uuid.Nil {
		m.AttendanceMarkID = uuid.New()
	}
	return nil
}
