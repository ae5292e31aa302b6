// file: internals/features/school/results/model/result_upload_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResultUploadModel: jejak setiap upload CSV nilai. Errors berisi nomor baris → alasan.
type ResultUploadModel struct {
	ResultUploadID            uuid.UUID         `gorm:"column:result_upload_id;type:uuid;primaryKey" json:"id"`
	ResultUploadTeacherUserID uuid.UUID         `gorm:"column:result_upload_teacher_user_id;type:uuid;not null;index:idx_result_uploads_teacher" json:"teacher_user_id"`
	ResultUploadFileName      string            `gorm:"column:result_upload_file_name;size:255;not null" json:"file_name"`
	ResultUploadInserted      int               `gorm:"column:result_upload_inserted;not null;default:0" json:"inserted"`
	ResultUploadFailed        int               `gorm:"column:result_upload_failed;not null;default:0" json:"failed"`
	ResultUploadErrors        datatypes.JSONMap `gorm:"column:result_upload_errors" json:"errors,omitempty"`
	ResultUploadCreatedAt     time.Time         `gorm:"column:result_upload_created_at;autoCreateTime" json:"created_at"`
}

func (ResultUploadModel) TableName() string { return "result_uploads" }

func (u *ResultUploadModel) BeforeCreate(tx *gorm.DB) error {
	if u.ResultUploadID == uuid.Nil {
		u.ResultUploadID = uuid.New()
	}
	return nil
}
