// internals/features/school/attendance/model/attendance_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceSessionModel = satu QR yang diterbitkan guru.
// Window start/end disimpan apa adanya dari client (tidak divalidasi urutannya).
//
// IsActive selalu true saat insert dan tidak pernah diubah aplikasi;
// validitas sebenarnya ditentukan oleh ExpiryAt. Kolom tetap ikut dicek di query.
type AttendanceSessionModel struct {
	AttendanceSessionID          uuid.UUID `gorm:"column:attendance_session_id;type:uuid;primaryKey" json:"attendance_session_id"`
	AttendanceSessionToken       string    `gorm:"column:attendance_session_token;size:120;not null;uniqueIndex:uq_attendance_sessions_token" json:"attendance_session_token"`
	AttendanceSessionSubject     string    `gorm:"column:attendance_session_subject;size:160;not null;index:idx_attendance_sessions_subject" json:"attendance_session_subject"`
	AttendanceSessionWindowStart string    `gorm:"column:attendance_session_window_start;size:40;not null" json:"attendance_session_window_start"`
	AttendanceSessionWindowEnd   string    `gorm:"column:attendance_session_window_end;size:40;not null" json:"attendance_session_window_end"`
	AttendanceSessionTTLSeconds  int       `gorm:"column:attendance_session_ttl_seconds;not null" json:"attendance_session_ttl_seconds"`
	AttendanceSessionExpiryAt    time.Time `gorm:"column:attendance_session_expiry_at;not null" json:"attendance_session_expiry_at"`
	AttendanceSessionIsActive    bool      `gorm:"column:attendance_session_is_active;not null;default:true" json:"attendance_session_is_active"`

	AttendanceSessionCreatedByUserID *uuid.UUID `gorm:"column:attendance_session_created_by_user_id;type:uuid" json:"attendance_session_created_by_user_id,omitempty"`
	AttendanceSessionCreatedAt       time.Time  `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
}

func (AttendanceSessionModel) TableName() string {
	return "attendance_sessions"
}

func (m *AttendanceSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceSessionID == uuid.Nil {
		m.AttendanceSessionID = uuid.New()
	}
	return nil
}
