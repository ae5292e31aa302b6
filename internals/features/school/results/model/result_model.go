package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultModel: nilai satu student untuk satu ujian di satu subject.
type ResultModel struct {
	ResultID            uuid.UUID `gorm:"column:result_id;type:uuid;primaryKey" json:"result_id"`
	ResultStudentCode   string    `gorm:"column:result_student_code;size:50;not null;index:idx_results_student" json:"student_id"`
	ResultSubjectID     uuid.UUID `gorm:"column:result_subject_id;type:uuid;not null;index:idx_results_subject" json:"subject_id"`
	ResultExamType      string    `gorm:"column:result_exam_type;size:60;not null" json:"exam_type"`
	ResultMarksObtained float64   `gorm:"column:result_marks_obtained;type:numeric(8,2);not null" json:"marks_obtained"`
	ResultMaxMarks      float64   `gorm:"column:result_max_marks;type:numeric(8,2);not null" json:"max_marks"`
	ResultRemarks       *string   `gorm:"column:result_remarks;type:text" json:"remarks,omitempty"`
	ResultTeacherUserID uuid.UUID `gorm:"column:result_teacher_user_id;type:uuid;not null" json:"teacher_user_id"`
	ResultCreatedAt     time.Time `gorm:"column:result_created_at;autoCreateTime" json:"created_at"`
}

func (ResultModel) TableName() string { return "results" }

func (r *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ResultID == uuid.Nil {
		r.ResultID = uuid.New()
	}
	return nil
}
