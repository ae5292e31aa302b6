// file: internals/features/school/leaves/model/leave_application_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type LeaveApplicationModel struct {
	LeaveApplicationID          uuid.UUID `gorm:"column:leave_application_id;type:uuid;primaryKey" json:"id"`
	LeaveApplicationStudentCode string    `gorm:"column:leave_application_student_code;size:50;not null;index:idx_leave_applications_student" json:"student_id"`
	LeaveApplicationStudentName string    `gorm:"column:leave_application_student_name;size:120;not null" json:"student_name"`

	/* ============ Isi pengajuan ============ */
	LeaveApplicationLeaveType      string         `gorm:"column:leave_application_leave_type;size:40;not null" json:"leave_type"`
	LeaveApplicationStartDate      datatypes.Date `gorm:"column:leave_application_start_date;not null" json:"start_date"`
	LeaveApplicationEndDate        datatypes.Date `gorm:"column:leave_application_end_date;not null" json:"end_date"`
	LeaveApplicationReason         string         `gorm:"column:leave_application_reason;type:text;not null" json:"reason"`
	LeaveApplicationAttachmentPath *string        `gorm:"column:leave_application_attachment_path;type:text" json:"attachment_path,omitempty"`

	/* ============ Review ============ */
	LeaveApplicationStatus     string     `gorm:"column:leave_application_status;size:16;not null;default:'pending'" json:"status"`
	LeaveApplicationAppliedAt  time.Time  `gorm:"column:leave_application_applied_at;autoCreateTime;index:idx_leave_applications_applied_at" json:"applied_at"`
	LeaveApplicationReviewedAt *time.Time `gorm:"column:leave_application_reviewed_at" json:"reviewed_at,omitempty"`
	LeaveApplicationReviewedBy *uuid.UUID `gorm:"column:leave_application_reviewed_by;type:uuid" json:"reviewed_by,omitempty"`
}

func (LeaveApplicationModel) TableName() string { return "leave_applications" }

func (l *LeaveApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if l.LeaveApplicationID == uuid.Nil {
		l.LeaveApplicationID = uuid.New()
	}
	if l.LeaveApplicationStatus == "" {
		l.LeaveApplicationStatus = LeaveStatusPending
	}
	return nil
}
