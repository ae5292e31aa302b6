// file: internals/features/school/leaves/service/leave_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"attendku_backend/internals/features/school/leaves/dto"
	m "attendku_backend/internals/features/school/leaves/model"
	subjectRepo "attendku_backend/internals/features/school/subjects/repository"
	subjectService "attendku_backend/internals/features/school/subjects/service"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeaveService struct {
	DB        *gorm.DB
	UploadDir string
	Now       func() time.Time
}

func New(db *gorm.DB, uploadDir string) *LeaveService {
	if uploadDir == "" {
		uploadDir = "uploads/leave_documents"
	}
	return &LeaveService{DB: db, UploadDir: uploadDir, Now: time.Now}
}

// Submit: pengajuan izin oleh student login. attachment boleh nil.
func (s *LeaveService) Submit(ctx context.Context, userID uuid.UUID, req dto.SubmitLeaveRequest, attachment *multipart.FileHeader) (*m.LeaveApplicationModel, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperror.Validation("Invalid start_date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperror.Validation("Invalid end_date")
	}

	var st userModel.StudentModel
	if err := s.DB.WithContext(ctx).Where("student_user_id = ?", userID).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Student not found")
		}
		return nil, apperror.Storage("Failed to submit leave application", err)
	}

	row := &m.LeaveApplicationModel{
		LeaveApplicationStudentCode: st.StudentCode,
		LeaveApplicationStudentName: st.StudentName,
		LeaveApplicationLeaveType:   req.LeaveType,
		LeaveApplicationStartDate:   datatypes.Date(start),
		LeaveApplicationEndDate:     datatypes.Date(end),
		LeaveApplicationReason:      req.Reason,
		LeaveApplicationStatus:      m.LeaveStatusPending,
	}

	if attachment != nil {
		name, err := helper.SaveAttachment(s.UploadDir, userID.String(), attachment, s.Now())
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("File upload error: %v", err))
		}
		row.LeaveApplicationAttachmentPath = &name
	}

	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		if row.LeaveApplicationAttachmentPath != nil {
			_ = os.Remove(filepath.Join(s.UploadDir, *row.LeaveApplicationAttachmentPath))
		}
		return nil, apperror.Storage("Failed to submit leave application", err)
	}
	return row, nil
}

// ListAll: semua pengajuan, terbaru dulu.
func (s *LeaveService) ListAll(ctx context.Context, p helper.Paging) ([]m.LeaveApplicationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&m.LeaveApplicationModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("Failed to load leave applications", err)
	}
	out := []m.LeaveApplicationModel{}
	if err := q.Order("leave_application_applied_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&out).Error; err != nil {
		return nil, 0, apperror.Storage("Failed to load leave applications", err)
	}
	return out, total, nil
}

// ListForSubject: hanya guru pemilik subject yang boleh melihat.
// Pengajuan izin tidak terikat subject, jadi isinya sama dengan ListAll.
func (s *LeaveService) ListForSubject(ctx context.Context, subjectID, teacherUserID uuid.UUID, p helper.Paging) ([]m.LeaveApplicationModel, int64, error) {
	sub, err := subjectRepo.FindOwned(ctx, s.DB, subjectID, teacherUserID)
	if err != nil {
		return nil, 0, apperror.Storage("Failed to load leave applications", err)
	}
	if sub == nil {
		return nil, 0, apperror.NotFound(subjectService.MsgSubjectNotFound)
	}
	return s.ListAll(ctx, p)
}

// ListForStudent: pengajuan milik satu student.
func (s *LeaveService) ListForStudent(ctx context.Context, studentCode string) ([]m.LeaveApplicationModel, error) {
	out := []m.LeaveApplicationModel{}
	err := s.DB.WithContext(ctx).
		Where("leave_application_student_code = ?", studentCode).
		Order("leave_application_applied_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperror.Storage("Failed to load leave applications", err)
	}
	return out, nil
}

func (s *LeaveService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewer uuid.UUID) (*m.LeaveApplicationModel, error) {
	if status != m.LeaveStatusApproved && status != m.LeaveStatusRejected {
		return nil, apperror.Validation("Invalid data")
	}
	now := s.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&m.LeaveApplicationModel{}).
		Where("leave_application_id = ?", id).
		Updates(map[string]any{
			"leave_application_status":      status,
			"leave_application_reviewed_at": now,
			"leave_application_reviewed_by": reviewer,
		})
	if res.Error != nil {
		return nil, apperror.Storage("Failed to update status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("Leave application not found")
	}

	var row m.LeaveApplicationModel
	if err := s.DB.WithContext(ctx).First(&row, "leave_application_id = ?", id).Error; err != nil {
		return nil, apperror.Storage("Failed to update status", err)
	}
	log.Printf("[INFO] leave %s → %s oleh %s", id, status, reviewer)
	return &row, nil
}

// AttachmentPath: path file lampiran di disk.
func (s *LeaveService) AttachmentPath(ctx context.Context, id uuid.UUID) (string, error) {
	var row m.LeaveApplicationModel
	err := s.DB.WithContext(ctx).
		Select("leave_application_id", "leave_application_attachment_path").
		First(&row, "leave_application_id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.Storage("Failed to load attachment", err)
	}
	if err != nil || row.LeaveApplicationAttachmentPath == nil || *row.LeaveApplicationAttachmentPath == "" {
		return "", apperror.NotFound("File not found")
	}

	full := filepath.Join(s.UploadDir, filepath.Base(*row.LeaveApplicationAttachmentPath))
	if _, err := os.Stat(full); err != nil {
		return "", apperror.NotFound("File not found on server")
	}
	return full, nil
}
