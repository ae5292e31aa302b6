// file: internals/features/school/activities/dto/activity_dto.go
package dto

import (
	"strings"
	"time"

	m "attendku_backend/internals/features/school/activities/model"
	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateActivityRequest struct {
	Title              string  `json:"title" validate:"required,max=200"`
	Description        string  `json:"description" validate:"required"`
	ActivityType       string  `json:"activity_type" validate:"required,max=60"`
	EventDate          string  `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime          string  `json:"start_time" validate:"required"`
	EndTime            string  `json:"end_time" validate:"required"`
	Location           string  `json:"location" validate:"required,max=200"`
	Organizer          string  `json:"organizer" validate:"required,max=160"`
	MaxParticipants    *int    `json:"max_participants" validate:"omitempty,min=1"`
	Requirements       *string `json:"requirements"`
	CertificateEnabled bool    `json:"certificate_enabled"`
}

func (r *CreateActivityRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ActivityType = strings.TrimSpace(r.ActivityType)
	r.EventDate = strings.TrimSpace(r.EventDate)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Location = strings.TrimSpace(r.Location)
	r.Organizer = strings.TrimSpace(r.Organizer)
	if r.Requirements != nil {
		v := strings.TrimSpace(*r.Requirements)
		if v == "" {
			r.Requirements = nil
		} else {
			r.Requirements = &v
		}
	}
}

// ToModel mem-parse tanggal & jam. Error dikembalikan per field.
func (r CreateActivityRequest) ToModel(teacherUserID uuid.UUID) (m.ActivityModel, map[string][]string) {
	errs := map[string][]string{}

	date, err := time.Parse("2006-01-02", r.EventDate)
	if err != nil {
		errs["event_date"] = append(errs["event_date"], "datetime")
	}
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		errs["start_time"] = append(errs["start_time"], "time")
	}
	end, err := dbtime.Parse(r.EndTime)
	if err != nil {
		errs["end_time"] = append(errs["end_time"], "time")
	}
	if len(errs) > 0 {
		return m.ActivityModel{}, errs
	}

	out := m.ActivityModel{
		ActivityTitle:              r.Title,
		ActivityDescription:        r.Description,
		ActivityType:               r.ActivityType,
		ActivityLocation:           r.Location,
		ActivityOrganizer:          r.Organizer,
		ActivityRequirements:       r.Requirements,
		ActivityEventDate:          datatypes.Date(date),
		ActivityStartTime:          start,
		ActivityEndTime:            end,
		ActivityTeacherUserID:      teacherUserID,
		ActivityCertificateEnabled: r.CertificateEnabled,
	}
	if r.MaxParticipants != nil {
		out.ActivityMaxParticipants = *r.MaxParticipants
	}
	return out, nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type ActivityItem struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ActivityType       string    `json:"activity_type"`
	EventDate          string    `json:"event_date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	Location           string    `json:"location"`
	MaxParticipants    int       `json:"max_participants"`
	Participants       int64     `json:"participants"`
	Requirements       *string   `json:"requirements,omitempty"`
	Organizer          string    `json:"organizer"`
	TeacherName        string    `json:"teacher_name"`
	CertificateEnabled bool      `json:"certificate_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	// hanya diisi untuk student
	Participated *bool `json:"participated,omitempty"`
}

func FromModel(a m.ActivityModel) ActivityItem {
	return ActivityItem{
		ID:                 a.ActivityID,
		Title:              a.ActivityTitle,
		Description:        a.ActivityDescription,
		ActivityType:       a.ActivityType,
		EventDate:          time.Time(a.ActivityEventDate).Format("2006-01-02"),
		StartTime:          a.ActivityStartTime.String(),
		EndTime:            a.ActivityEndTime.String(),
		Location:           a.ActivityLocation,
		MaxParticipants:    a.ActivityMaxParticipants,
		Requirements:       a.ActivityRequirements,
		Organizer:          a.ActivityOrganizer,
		CertificateEnabled: a.ActivityCertificateEnabled,
		CreatedAt:          a.ActivityCreatedAt,
	}
}

type CertificateResponse struct {
	StudentName    string    `json:"student_name"`
	StudentID      string    `json:"student_id"`
	ActivityID     uuid.UUID `json:"activity_id"`
	Title          string    `json:"title"`
	ActivityType   string    `json:"activity_type"`
	EventDate      string    `json:"event_date"`
	Organizer      string    `json:"organizer"`
	Location       string    `json:"location"`
	ParticipatedAt string    `json:"participated_at"`
}
