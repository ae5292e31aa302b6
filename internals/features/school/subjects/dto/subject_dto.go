// file: internals/features/school/subjects/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	m "attendku_backend/internals/features/school/subjects/model"

	"github.com/google/uuid"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateSubjectRequest struct {
	Name         string  `json:"subject_name" validate:"required,min=1,max=160"`
	AcademicYear string  `json:"academic_year" validate:"required,max=20"`
	Division     string  `json:"division" validate:"required,max=20"`
	Code         *string `json:"subject_code" validate:"omitempty,max=40"`
	Credits      *int    `json:"credits" validate:"omitempty,min=0,max=40"`
	Description  *string `json:"description"`
	Semester     *string `json:"semester" validate:"omitempty,max=20"`
	Department   *string `json:"department" validate:"omitempty,max=120"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.Division = strings.TrimSpace(r.Division)

	for _, pp := range []**string{&r.Code, &r.Description, &r.Semester, &r.Department} {
		if *pp == nil {
			continue
		}
		v := strings.TrimSpace(**pp)
		if v == "" {
			*pp = nil
			continue
		}
		*pp = &v
	}
}

func (r CreateSubjectRequest) ToModel(teacherUserID uuid.UUID) m.SubjectModel {
	out := m.SubjectModel{
		SubjectTeacherUserID: teacherUserID,
		SubjectName:          r.Name,
		SubjectCode:          r.Code,
		SubjectAcademicYear:  r.AcademicYear,
		SubjectDivision:      r.Division,
		SubjectDescription:   r.Description,
		SubjectSemester:      r.Semester,
		SubjectDepartment:    r.Department,
	}
	if r.Credits != nil {
		out.SubjectCredits = *r.Credits
	}
	return out
}

/* =========================================================
   RESPONSE
   ========================================================= */

type SubjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         *string   `json:"code,omitempty"`
	AcademicYear string    `json:"academic_year"`
	Division     string    `json:"division"`
	Credits      int       `json:"credits"`
	Description  *string   `json:"description,omitempty"`
	Semester     *string   `json:"semester,omitempty"`
	Department   *string   `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModel(s m.SubjectModel) SubjectResponse {
	return SubjectResponse{
		ID:           s.SubjectID,
		Name:         s.SubjectName,
		Code:         s.SubjectCode,
		AcademicYear: s.SubjectAcademicYear,
		Division:     s.SubjectDivision,
		Credits:      s.SubjectCredits,
		Description:  s.SubjectDescription,
		Semester:     s.SubjectSemester,
		Department:   s.SubjectDepartment,
		CreatedAt:    s.SubjectCreatedAt,
	}
}

func FromModels(list []m.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromModel(s))
	}
	return out
}

// Dropdown form nilai: siswa + subject milik teacher.
type StudentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SubjectOption struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Year     string    `json:"year"`
	Division string    `json:"division"`
}

type StudentsSubjectsResponse struct {
	Students []StudentOption `json:"students"`
	Subjects []SubjectOption `json:"subjects"`
}
