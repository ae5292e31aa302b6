package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherModel struct {
	TeacherID        uuid.UUID  `gorm:"column:teacher_id;type:uuid;primaryKey" json:"id"`
	TeacherCode      string     `gorm:"column:teacher_code;size:50;not null;uniqueIndex:uq_teachers_code" json:"teacher_id"`
	TeacherName      string     `gorm:"column:teacher_name;size:120;not null" json:"name"`
	TeacherSubject   *string    `gorm:"column:teacher_subject;size:120" json:"subject,omitempty"`
	TeacherUserID    *uuid.UUID `gorm:"column:teacher_user_id;type:uuid;index:idx_teachers_user" json:"user_id,omitempty"`
	TeacherCreatedAt time.Time  `gorm:"column:teacher_created_at;autoCreateTime" json:"created_at"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}

func (t *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if t.TeacherID == uuid.Nil {
		t.TeacherID = uuid.New()
	}
	return nil
}
