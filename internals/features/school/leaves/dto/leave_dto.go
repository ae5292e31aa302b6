// file: internals/features/school/leaves/dto/leave_dto.go
package dto

import (
	"strings"
	"time"

	m "attendku_backend/internals/features/school/leaves/model"

	"github.com/google/uuid"
)

// SubmitLeaveRequest dibaca dari multipart form (attachment terpisah via FormFile).
type SubmitLeaveRequest struct {
	LeaveType string `form:"leave_type" validate:"required,max=40"`
	StartDate string `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `form:"reason" validate:"required"`
}

func (r *SubmitLeaveRequest) Normalize() {
	r.LeaveType = strings.TrimSpace(r.LeaveType)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Reason = strings.TrimSpace(r.Reason)
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *UpdateLeaveStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

type LeaveResponse struct {
	ID             uuid.UUID  `json:"id"`
	StudentID      string     `json:"student_id"`
	StudentName    string     `json:"student_name"`
	LeaveType      string     `json:"leave_type"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"applied_at"`
	HasAttachment  bool       `json:"has_attachment"`
	AttachmentPath *string    `json:"attachment_path,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by,omitempty"`
}

func FromModel(l m.LeaveApplicationModel) LeaveResponse {
	return LeaveResponse{
		ID:             l.LeaveApplicationID,
		StudentID:      l.LeaveApplicationStudentCode,
		StudentName:    l.LeaveApplicationStudentName,
		LeaveType:      l.LeaveApplicationLeaveType,
		StartDate:      time.Time(l.LeaveApplicationStartDate).Format("2006-01-02"),
		EndDate:        time.Time(l.LeaveApplicationEndDate).Format("2006-01-02"),
		Reason:         l.LeaveApplicationReason,
		Status:         l.LeaveApplicationStatus,
		AppliedAt:      l.LeaveApplicationAppliedAt,
		HasAttachment:  l.LeaveApplicationAttachmentPath != nil,
		AttachmentPath: l.LeaveApplicationAttachmentPath,
		ReviewedAt:     l.LeaveApplicationReviewedAt,
		ReviewedBy:     l.LeaveApplicationReviewedBy,
	}
}

func FromModels(list []m.LeaveApplicationModel) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, FromModel(l))
	}
	return out
}
