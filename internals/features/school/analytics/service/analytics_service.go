// file: internals/features/school/analytics/service/analytics_service.go
package service

import (
	"context"
	"math"

	attModel "attendku_backend/internals/features/school/attendance/model"
	userModel "attendku_backend/internals/features/users/user/model"
	"attendku_backend/internals/helpers/apperror"
	"attendku_backend/internals/helpers/dbtime"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const presentWindowDays = 30

type Summary struct {
	TotalStudents     int64   `json:"total_students"`
	PresentLast30Days int64   `json:"present_last_30_days"`
	AttendanceRate    float64 `json:"attendance_rate"`
	TotalSessions     int64   `json:"total_sessions"`
	TotalMarks        int64   `json:"total_marks"`
}

// Compute menjalankan semua hitungan paralel (masing-masing query terpisah).
func Compute(ctx context.Context, db *gorm.DB) (*Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return db.WithContext(gctx).Model(&userModel.StudentModel{}).Count(&out.TotalStudents).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&attModel.AttendanceMarkModel{}).
			Where(dbtime.WithinLastDays(db, "attendance_mark_marked_at", presentWindowDays)).
			Distinct("attendance_mark_student_code").
			Count(&out.PresentLast30Days).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&attModel.AttendanceSessionModel{}).Count(&out.TotalSessions).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&attModel.AttendanceMarkModel{}).Count(&out.TotalMarks).Error
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Storage("Failed to load analytics", err)
	}
	out.AttendanceRate = Rate(out.PresentLast30Days, out.TotalStudents)
	return &out, nil
}

// Rate: persen dengan 1 desimal; 0 kalau belum ada student.
func Rate(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}
