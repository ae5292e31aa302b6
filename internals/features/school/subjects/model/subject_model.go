// file: internals/features/school/subjects/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	/* ============ PK & owner ============ */
	SubjectID            uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectTeacherUserID uuid.UUID `gorm:"column:subject_teacher_user_id;type:uuid;not null;index:idx_subjects_teacher" json:"subject_teacher_user_id"`

	/* ============ Identitas ============ */
	SubjectName         string  `gorm:"column:subject_name;size:160;not null;index:idx_subjects_name" json:"subject_name"`
	SubjectCode         *string `gorm:"column:subject_code;size:40" json:"subject_code,omitempty"`
	SubjectAcademicYear string  `gorm:"column:subject_academic_year;size:20;not null" json:"subject_academic_year"`
	SubjectDivision     string  `gorm:"column:subject_division;size:20;not null" json:"subject_division"`

	/* ============ Atribut ============ */
	SubjectCredits     int     `gorm:"column:subject_credits;not null;default:3" json:"subject_credits"`
	SubjectDescription *string `gorm:"column:subject_description;type:text" json:"subject_description,omitempty"`
	SubjectSemester    *string `gorm:"column:subject_semester;size:20" json:"subject_semester,omitempty"`
	SubjectDepartment  *string `gorm:"column:subject_department;size:120" json:"subject_department,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (s *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if s.SubjectID == uuid.Nil {
		s.SubjectID = uuid.New()
	}
	if s.SubjectCredits == 0 {
		s.SubjectCredits = 3
	}
	return nil
}
