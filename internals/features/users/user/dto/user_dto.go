package dto

import (
	"time"

	uModel "attendku_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

/* =======================================================
   STUDENTS
   ======================================================= */

type StudentItem struct {
	ID           uuid.UUID `json:"id"`
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	Division     *string   `json:"division,omitempty"`
	AcademicYear *string   `json:"academic_year,omitempty"`
}

func ToStudentItem(m uModel.StudentModel) StudentItem {
	return StudentItem{
		ID:           m.StudentID,
		StudentID:    m.StudentCode,
		Name:         m.StudentName,
		Division:     m.StudentDivision,
		AcademicYear: m.StudentAcademicYear,
	}
}

func ToStudentItems(list []uModel.StudentModel) []StudentItem {
	out := make([]StudentItem, 0, len(list))
	for _, s := range list {
		out = append(out, ToStudentItem(s))
	}
	return out
}

/* =======================================================
   USERS (admin)
   ======================================================= */

type UserItem struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserItem(u uModel.UserModel) UserItem {
	return UserItem{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserStatusRequest: PATCH /api/a/users/:id/status
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
