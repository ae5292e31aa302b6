package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"attendku_backend/internals/databases/dbtest"
	attModel "attendku_backend/internals/features/school/attendance/model"
	resultModel "attendku_backend/internals/features/school/results/model"
	"attendku_backend/internals/features/school/subjects/dto"
	m "attendku_backend/internals/features/school/subjects/model"
	userModel "attendku_backend/internals/features/users/user/model"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB, teacher uuid.UUID, subject string) (*m.SubjectModel, *attModel.AttendanceSessionModel) {
	t.Helper()
	ctx := context.Background()
	svc := New(db)

	sub, err := svc.Create(ctx, teacher, dto.CreateSubjectRequest{Name: subject, AcademicYear: "2024", Division: "A"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	sess := &attModel.AttendanceSessionModel{
		AttendanceSessionToken:       "tok-" + subject,
		AttendanceSessionSubject:     subject,
		AttendanceSessionWindowStart: "09:00",
		AttendanceSessionWindowEnd:   "10:00",
		AttendanceSessionTTLSeconds:  300,
		AttendanceSessionExpiryAt:    time.Now().UTC().Add(time.Hour),
		AttendanceSessionIsActive:    true,
	}
	if err := db.Create(sess).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	mark := &attModel.AttendanceMarkModel{
		AttendanceMarkStudentCode: "S001",
		AttendanceMarkSessionID:   sess.AttendanceSessionID,
		AttendanceMarkMarkedAt:    time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	if err := db.Create(mark).Error; err != nil {
		t.Fatalf("create mark: %v", err)
	}
	res := &resultModel.ResultModel{
		ResultStudentCode: "S001", ResultSubjectID: sub.SubjectID, ResultExamType: "Midterm",
		ResultMarksObtained: 80, ResultMaxMarks: 100, ResultTeacherUserID: teacher,
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("create result: %v", err)
	}
	return sub, sess
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateDefaultsCredits(t *testing.T) {
	db := dbtest.NewSQLite(t)
	sub, err := New(db).Create(context.Background(), uuid.New(), dto.CreateSubjectRequest{Name: "Physics", AcademicYear: "2024", Division: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.SubjectCredits != 3 {
		t.Errorf("credits = %d, want 3", sub.SubjectCredits)
	}
}

func TestDeleteCascadesOnlyOwnedSubject(t *testing.T) {
	db := dbtest.NewSQLite(t)
	ctx := context.Background()
	if err := db.Create(&userModel.StudentModel{StudentCode: "S001", StudentName: "Ayu"}).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}

	owner, other := uuid.New(), uuid.New()
	math, mathSess := seed(t, db, owner, "Math")
	_, bioSess := seed(t, db, owner, "Biology")
	svc := New(db)

	err := svc.Delete(ctx, math.SubjectID, other)
	if ae, ok := apperror.As(err); !ok || ae.Kind != apperror.KindNotFound || ae.Message != MsgSubjectNotFound {
		t.Fatalf("delete by non-owner err = %v", err)
	}
	if err := svc.Delete(ctx, uuid.New(), owner); err == nil {
		t.Fatal("delete unknown subject: want error")
	}

	if err := svc.Delete(ctx, math.SubjectID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n := count(t, db, &m.SubjectModel{}, "subject_id = ?", math.SubjectID); n != 0 {
		t.Errorf("subject rows = %d", n)
	}
	if n := count(t, db, &attModel.AttendanceSessionModel{}, "attendance_session_id = ?", mathSess.AttendanceSessionID); n != 0 {
		t.Errorf("session rows = %d", n)
	}
	if n := count(t, db, &attModel.AttendanceMarkModel{}, "attendance_mark_session_id = ?", mathSess.AttendanceSessionID); n != 0 {
		t.Errorf("mark rows = %d", n)
	}
	if n := count(t, db, &resultModel.ResultModel{}, "result_subject_id = ?", math.SubjectID); n != 0 {
		t.Errorf("result rows = %d", n)
	}

	// subject lain tidak tersentuh
	if n := count(t, db, &attModel.AttendanceMarkModel{}, "attendance_mark_session_id = ?", bioSess.AttendanceSessionID); n != 1 {
		t.Errorf("biology marks = %d, want 1", n)
	}
}

func TestAttendanceCSV(t *testing.T) {
	t.Setenv("SCHOOL_TIMEZONE", "UTC")
	db := dbtest.NewSQLite(t)
	if err := db.Create(&userModel.StudentModel{StudentCode: "S001", StudentName: "Ayu"}).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	owner := uuid.New()
	sub, _ := seed(t, db, owner, "Math")

	_, rows, err := New(db).Attendance(context.Background(), sub.SubjectID, owner)
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteAttendanceCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		AttendanceCSVHeader,
		{"Ayu", "S001", "Math", "2024-03-04 05:06:07"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("records[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}

	if got := CSVFilename("Math"); got != "Math_attendance.csv" {
		t.Errorf("filename = %q", got)
	}
}
