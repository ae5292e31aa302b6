// file: internals/features/school/activities/model/activity_model.go
package model

import (
	"time"

	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityModel struct {
	ActivityID uuid.UUID `gorm:"column:activity_id;type:uuid;primaryKey" json:"id"`

	/* ============ Info kegiatan ============ */
	ActivityTitle        string  `gorm:"column:activity_title;size:200;not null" json:"title"`
	ActivityDescription  string  `gorm:"column:activity_description;type:text;not null" json:"description"`
	ActivityType         string  `gorm:"column:activity_type;size:60;not null" json:"activity_type"`
	ActivityLocation     string  `gorm:"column:activity_location;size:200;not null" json:"location"`
	ActivityOrganizer    string  `gorm:"column:activity_organizer;size:160;not null" json:"organizer"`
	ActivityRequirements *string `gorm:"column:activity_requirements;type:text" json:"requirements,omitempty"`

	/* ============ Jadwal ============ */
	ActivityEventDate datatypes.Date `gorm:"column:activity_event_date;not null;index:idx_activities_event_date" json:"event_date"`
	ActivityStartTime dbtime.Tod     `gorm:"column:activity_start_time;type:time;not null" json:"start_time"`
	ActivityEndTime   dbtime.Tod     `gorm:"column:activity_end_time;type:time;not null" json:"end_time"`

	ActivityMaxParticipants    int       `gorm:"column:activity_max_participants;not null;default:100" json:"max_participants"`
	ActivityTeacherUserID      uuid.UUID `gorm:"column:activity_teacher_user_id;type:uuid;not null" json:"teacher_user_id"`
	ActivityCertificateEnabled bool      `gorm:"column:activity_certificate_enabled;not null;default:false" json:"certificate_enabled"`
	ActivityCreatedAt          time.Time `gorm:"column:activity_created_at;autoCreateTime" json:"created_at"`
}

func (ActivityModel) TableName() string { return "activities" }

func (a *ActivityModel) BeforeCreate(tx *gorm.DB) error {
	if a.ActivityID == uuid.Nil {
		a.ActivityID = uuid.New()
	}
	if a.ActivityMaxParticipants == 0 {
		a.ActivityMaxParticipants = 100
	}
	return nil
}

// ActivityParticipantModel: satu student hanya bisa join sekali per kegiatan.
type ActivityParticipantModel struct {
	ActivityParticipantID             uuid.UUID `gorm:"column:activity_participant_id;type:uuid;primaryKey" json:"id"`
	ActivityParticipantActivityID     uuid.UUID `gorm:"column:activity_participant_activity_id;type:uuid;not null;uniqueIndex:uq_activity_participants_activity_student,priority:1" json:"activity_id"`
	ActivityParticipantStudentCode    string    `gorm:"column:activity_participant_student_code;size:50;not null;uniqueIndex:uq_activity_participants_activity_student,priority:2" json:"student_id"`
	ActivityParticipantStudentName    string    `gorm:"column:activity_participant_student_name;size:120;not null" json:"student_name"`
	ActivityParticipantParticipatedAt time.Time `gorm:"column:activity_participant_participated_at;autoCreateTime" json:"participated_at"`
}

func (ActivityParticipantModel) TableName() string { return "activity_participants" }

func (p *ActivityParticipantModel) BeforeCreate(tx *gorm.DB) error {
	if p.ActivityParticipantID == uuid.Nil {
		p.ActivityParticipantID = uuid.New()
	}
	return nil
}
