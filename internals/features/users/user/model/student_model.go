package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel: profil student. StudentCode = nomor induk yang dipakai saat scan QR.
type StudentModel struct {
	StudentID           uuid.UUID  `gorm:"column:student_id;type:uuid;primaryKey" json:"id"`
	StudentCode         string     `gorm:"column:student_code;size:50;not null;uniqueIndex:uq_students_code" json:"student_id"`
	StudentName         string     `gorm:"column:student_name;size:120;not null" json:"name"`
	StudentDivision     *string    `gorm:"column:student_division;size:20" json:"division,omitempty"`
	StudentAcademicYear *string    `gorm:"column:student_academic_year;size:20" json:"academic_year,omitempty"`
	StudentUserID       *uuid.UUID `gorm:"column:student_user_id;type:uuid;index:idx_students_user" json:"user_id,omitempty"`
	StudentCreatedAt    time.Time  `gorm:"column:student_created_at;autoCreateTime" json:"created_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}
