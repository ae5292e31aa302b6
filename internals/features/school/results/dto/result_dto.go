// file: internals/features/school/results/dto/result_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateResultRequest struct {
	StudentID     string    `json:"student_id" validate:"required,max=50"`
	SubjectID     uuid.UUID `json:"subject_id" validate:"required"`
	ExamType      string    `json:"exam_type" validate:"required,max=60"`
	MarksObtained *float64  `json:"marks_obtained" validate:"required,gte=0"`
	MaxMarks      *float64  `json:"max_marks" validate:"required,gt=0"`
	Remarks       *string   `json:"remarks"`
}

func (r *CreateResultRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.ExamType = strings.TrimSpace(r.ExamType)
	if r.Remarks != nil {
		v := strings.TrimSpace(*r.Remarks)
		if v == "" {
			r.Remarks = nil
		} else {
			r.Remarks = &v
		}
	}
}

// ResultItem: nilai milik student (dengan nama subject).
type ResultItem struct {
	ID            uuid.UUID `json:"id" gorm:"column:id"`
	StudentID     string    `json:"student_id" gorm:"column:student_id"`
	SubjectID     uuid.UUID `json:"subject_id" gorm:"column:subject_id"`
	SubjectName   string    `json:"subject_name" gorm:"column:subject_name"`
	ExamType      string    `json:"exam_type" gorm:"column:exam_type"`
	MarksObtained float64   `json:"marks_obtained" gorm:"column:marks_obtained"`
	MaxMarks      float64   `json:"max_marks" gorm:"column:max_marks"`
	Percentage    float64   `json:"percentage" gorm:"-"`
	Remarks       *string   `json:"remarks,omitempty" gorm:"column:remarks"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
}

type UploadSummary struct {
	UploadID uuid.UUID         `json:"upload_id"`
	Inserted int               `json:"inserted"`
	Failed   int               `json:"failed"`
	Errors   map[string]string `json:"errors,omitempty"`
}
