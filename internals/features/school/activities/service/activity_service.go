// file: internals/features/school/activities/service/activity_service.go
package service

import (
	"context"
	"errors"
	"time"

	"attendku_backend/internals/features/school/activities/dto"
	m "attendku_backend/internals/features/school/activities/model"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/apperror"
	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MsgAlreadyJoined         = "Already joined this activity"
	MsgActivityFull          = "Activity is full"
	MsgActivityNotFound      = "Activity not found"
	MsgCertificateNotAllowed = "Certificate not available"
)

type ActivityService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

func (s *ActivityService) Create(ctx context.Context, teacherUserID uuid.UUID, req dto.CreateActivityRequest) (*m.ActivityModel, error) {
	row, fieldErrs := req.ToModel(teacherUserID)
	if len(fieldErrs) > 0 {
		return nil, apperror.ValidationFields(fieldErrs)
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperror.Storage("Failed to create activity", err)
	}
	return &row, nil
}

type activityRow struct {
	m.ActivityModel  `gorm:"embedded"`
	TeacherName      string `gorm:"column:teacher_name"`
	ParticipantCount int64  `gorm:"column:participant_count"`
	Participated     bool   `gorm:"column:participated"`
}

// List: semua kegiatan urut event_date. studentCode != "" → isi flag participated.
func (s *ActivityService) List(ctx context.Context, studentCode string) ([]dto.ActivityItem, error) {
	rows := []activityRow{}
	err := s.DB.WithContext(ctx).
		Table("activities AS a").
		Select(`a.*,
			COALESCE(t.teacher_name, u.user_name, '') AS teacher_name,
			(SELECT COUNT(*) FROM activity_participants p WHERE p.activity_participant_activity_id = a.activity_id) AS participant_count,
			(ap.activity_participant_id IS NOT NULL) AS participated`).
		Joins("LEFT JOIN teachers t ON t.teacher_user_id = a.activity_teacher_user_id").
		Joins("LEFT JOIN users u ON u.id = a.activity_teacher_user_id").
		Joins("LEFT JOIN activity_participants ap ON ap.activity_participant_activity_id = a.activity_id AND ap.activity_participant_student_code = ?", studentCode).
		Order("a.activity_event_date ASC, a.activity_start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("Failed to load activities", err)
	}

	out := make([]dto.ActivityItem, 0, len(rows))
	for _, r := range rows {
		item := dto.FromModel(r.ActivityModel)
		item.TeacherName = r.TeacherName
		item.Participants = r.ParticipantCount
		if studentCode != "" {
			p := r.Participated
			item.Participated = &p
		}
		out = append(out, item)
	}
	return out, nil
}

func findStudent(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.StudentModel, error) {
	var st userModel.StudentModel
	err := db.WithContext(ctx).Where("student_user_id = ?", userID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Student not found")
	}
	if err != nil {
		return nil, apperror.Storage("Failed to load student", err)
	}
	return &st, nil
}

// Join: student ikut kegiatan. Kuota dicek di dalam transaksi; di postgres baris
// activity dikunci supaya dua join paralel tidak melewati max_participants.
func (s *ActivityService) Join(ctx context.Context, activityID, userID uuid.UUID) (*m.ActivityParticipantModel, error) {
	st, err := findStudent(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	var out *m.ActivityParticipantModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("activity_id = ?", activityID)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var act m.ActivityModel
		if err := q.First(&act).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound(MsgActivityNotFound)
			}
			return apperror.Storage("Failed to join activity", err)
		}

		var joined int64
		if err := tx.Model(&m.ActivityParticipantModel{}).
			Where("activity_participant_activity_id = ? AND activity_participant_student_code = ?", activityID, st.StudentCode).
			Count(&joined).Error; err != nil {
			return apperror.Storage("Failed to join activity", err)
		}
		if joined > 0 {
			return apperror.Conflict(MsgAlreadyJoined)
		}

		var total int64
		if err := tx.Model(&m.ActivityParticipantModel{}).
			Where("activity_participant_activity_id = ?", activityID).
			Count(&total).Error; err != nil {
			return apperror.Storage("Failed to join activity", err)
		}
		if act.ActivityMaxParticipants > 0 && total >= int64(act.ActivityMaxParticipants) {
			return apperror.Conflict(MsgActivityFull)
		}

		p := &m.ActivityParticipantModel{
			ActivityParticipantActivityID:  activityID,
			ActivityParticipantStudentCode: st.StudentCode,
			ActivityParticipantStudentName: st.StudentName,
		}
		if err := tx.Create(p).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return apperror.Conflict(MsgAlreadyJoined)
			}
			return apperror.Storage("Failed to join activity", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Certificate: hanya untuk kegiatan bersertifikat yang benar-benar diikuti.
func (s *ActivityService) Certificate(ctx context.Context, activityID, userID uuid.UUID) (*dto.CertificateResponse, error) {
	st, err := findStudent(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	var row struct {
		m.ActivityModel `gorm:"embedded"`
		ParticipatedAt  time.Time `gorm:"column:participated_at"`
	}
	res := s.DB.WithContext(ctx).
		Table("activities AS a").
		Select("a.*, ap.activity_participant_participated_at AS participated_at").
		Joins("JOIN activity_participants ap ON ap.activity_participant_activity_id = a.activity_id").
		Where("a.activity_id = ? AND ap.activity_participant_student_code = ? AND a.activity_certificate_enabled = ?", activityID, st.StudentCode, true).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, apperror.Storage("Failed to load certificate", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound(MsgCertificateNotAllowed)
	}

	return &dto.CertificateResponse{
		StudentName:    st.StudentName,
		StudentID:      st.StudentCode,
		ActivityID:     row.ActivityID,
		Title:          row.ActivityTitle,
		ActivityType:   row.ActivityType,
		EventDate:      time.Time(row.ActivityEventDate).Format("2006-01-02"),
		Organizer:      row.ActivityOrganizer,
		Location:       row.ActivityLocation,
		ParticipatedAt: dbtime.FormatSchool(row.ParticipatedAt),
	}, nil
}
