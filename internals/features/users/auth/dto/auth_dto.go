package dto

import (
	"strings"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=student teacher admin"`
	Name     string `json:"name" validate:"required,max=120"`

	// wajib sesuai role
	StudentID string `json:"student_id" validate:"required_if=Role student,max=50"`
	TeacherID string `json:"teacher_id" validate:"required_if=Role teacher,max=50"`
	Subject   string `json:"subject" validate:"max=120"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Name = strings.TrimSpace(r.Name)
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.TeacherID = strings.TrimSpace(r.TeacherID)
	r.Subject = strings.TrimSpace(r.Subject)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// user_type kosong dianggap "student"
	UserType string `json:"user_type" validate:"omitempty,oneof=student teacher admin"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))
	if r.UserType == "" {
		r.UserType = "student"
	}
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UserResponse: user + profil sesuai role (field profil kosong untuk role lain).
type UserResponse struct {
	ID           string  `json:"id"`
	UserName     string  `json:"user_name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Name         string  `json:"name,omitempty"`
	StudentID    *string `json:"student_id,omitempty"`
	TeacherID    *string `json:"teacher_id,omitempty"`
	Subject      *string `json:"subject,omitempty"`
	Division     *string `json:"division,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}
