package service

import (
	"context"
	"testing"
	"time"

	"attendku_backend/internals/databases/dbtest"
	attModel "attendku_backend/internals/features/school/attendance/model"
	userModel "attendku_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

func TestRate(t *testing.T) {
	cases := []struct {
		present, total int64
		want           float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := Rate(tc.present, tc.total); got != tc.want {
			t.Errorf("Rate(%d, %d) = %v, want %v", tc.present, tc.total, got, tc.want)
		}
	}
}

func TestCompute(t *testing.T) {
	db := dbtest.NewSQLite(t)
	for _, code := range []string{"S001", "S002", "S003"} {
		if err := db.Create(&userModel.StudentModel{StudentCode: code, StudentName: code}).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	now := time.Now().UTC()
	sessA := attModel.AttendanceSessionModel{
		AttendanceSessionToken: "a", AttendanceSessionSubject: "Math", AttendanceSessionWindowStart: "s", AttendanceSessionWindowEnd: "e",
		AttendanceSessionTTLSeconds: 300, AttendanceSessionExpiryAt: now.Add(time.Hour), AttendanceSessionIsActive: true,
	}
	sessB := sessA
	sessB.AttendanceSessionToken = "b"
	for _, s := range []*attModel.AttendanceSessionModel{&sessA, &sessB} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	marks := []attModel.AttendanceMarkModel{
		{AttendanceMarkID: uuid.New(), AttendanceMarkStudentCode: "S001", AttendanceMarkSessionID: sessA.AttendanceSessionID, AttendanceMarkMarkedAt: now.Add(-time.Hour)},
		{AttendanceMarkID: uuid.New(), AttendanceMarkStudentCode: "S001", AttendanceMarkSessionID: sessB.AttendanceSessionID, AttendanceMarkMarkedAt: now.Add(-2 * time.Hour)},
		// di luar jendela 30 hari
		{AttendanceMarkID: uuid.New(), AttendanceMarkStudentCode: "S002", AttendanceMarkSessionID: sessA.AttendanceSessionID, AttendanceMarkMarkedAt: now.AddDate(0, 0, -45)},
	}
	for i := range marks {
		if err := db.Create(&marks[i]).Error; err != nil {
			t.Fatalf("seed mark: %v", err)
		}
	}

	sum, err := Compute(context.Background(), db)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := Summary{TotalStudents: 3, PresentLast30Days: 1, AttendanceRate: 33.3, TotalSessions: 2, TotalMarks: 3}
	if *sum != want {
		t.Errorf("summary = %+v, want %+v", *sum, want)
	}
}
