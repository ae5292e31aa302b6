package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"attendku_backend/internals/databases/dbtest"
	attModel "attendku_backend/internals/features/school/attendance/model"
	subjectModel "attendku_backend/internals/features/school/subjects/model"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedStudent(t *testing.T, db *gorm.DB, code, name string) {
	t.Helper()
	if err := db.Create(&userModel.StudentModel{StudentCode: code, StudentName: name}).Error; err != nil {
		t.Fatalf("seed student %s: %v", code, err)
	}
}

func seedSession(t *testing.T, db *gorm.DB, token, subject string, expiry time.Time) *attModel.AttendanceSessionModel {
	t.Helper()
	s := &attModel.AttendanceSessionModel{
		AttendanceSessionToken:       token,
		AttendanceSessionSubject:     subject,
		AttendanceSessionWindowStart: "09:00",
		AttendanceSessionWindowEnd:   "10:00",
		AttendanceSessionTTLSeconds:  300,
		AttendanceSessionExpiryAt:    expiry,
		AttendanceSessionIsActive:    true,
	}
	if err := NewGormStore(db).CreateSession(context.Background(), s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func TestGormStoreStudentExists(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	seedStudent(t, db, "S001", "Asha")

	ok, err := store.StudentExists(context.Background(), "S001")
	if err != nil || !ok {
		t.Fatalf("StudentExists(S001) = %v, %v; want true", ok, err)
	}
	ok, err = store.StudentExists(context.Background(), "S999")
	if err != nil || ok {
		t.Fatalf("StudentExists(S999) = %v, %v; want false", ok, err)
	}
}

func TestGormStoreSessionValidity(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedSession(t, db, "tok-live", "Math", now.Add(5*time.Minute))
	seedSession(t, db, "tok-old", "Math", now.Add(-time.Second))

	live, err := store.FindValidSession(ctx, "tok-live")
	if err != nil || live == nil {
		t.Fatalf("FindValidSession(live) = %v, %v", live, err)
	}
	if live.AttendanceSessionSubject != "Math" {
		t.Errorf("subject = %q", live.AttendanceSessionSubject)
	}

	old, err := store.FindValidSession(ctx, "tok-old")
	if err != nil {
		t.Fatalf("FindValidSession(old): %v", err)
	}
	if old != nil {
		t.Fatalf("expired session returned as valid")
	}

	// tanpa cek expiry, session lama masih ditemukan
	if s, err := store.FindActiveSession(ctx, "tok-old"); err != nil || s == nil {
		t.Fatalf("FindActiveSession(old) = %v, %v", s, err)
	}
	if s, err := store.FindValidSession(ctx, "missing"); err != nil || s != nil {
		t.Fatalf("FindValidSession(missing) = %v, %v", s, err)
	}
}

// Expiry tepat sama dengan clock DB masih dianggap valid (inklusif).
func TestGormStoreExpiryBoundaryIsInclusive(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()

	dbNow, err := dbtime.CurrentTime(db)
	if err != nil {
		t.Fatalf("CurrentTime: %v", err)
	}
	seedSession(t, db, "tok-edge", "Math", dbNow)

	// clock DB dibekukan di detik yang sama dengan expiry_at
	store.nowSQL = "'" + dbNow.Format("2006-01-02 15:04:05.000") + "'"
	got, err := store.FindValidSession(ctx, "tok-edge")
	if err != nil || got == nil {
		t.Fatalf("FindValidSession at expiry = %v, %v; want session", got, err)
	}

	store.nowSQL = "'" + dbNow.Add(time.Millisecond).Format("2006-01-02 15:04:05.000") + "'"
	got, err = store.FindValidSession(ctx, "tok-edge")
	if err != nil || got != nil {
		t.Fatalf("FindValidSession 1ms after expiry = %v, %v; want nil", got, err)
	}

	// clock DB asli: session yang expiry-nya sudah lewat tidak valid lagi
	store.nowSQL = dbtime.NowSQL(db)
	seedSession(t, db, "tok-ahead", "Math", dbNow.Add(time.Minute))
	if got, err := store.FindValidSession(ctx, "tok-ahead"); err != nil || got == nil {
		t.Fatalf("FindValidSession(ahead) = %v, %v", got, err)
	}
}

func TestGormStoreInactiveSessionIsInvalid(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	s := seedSession(t, db, "tok-off", "Math", time.Now().UTC().Add(time.Hour))

	if err := db.Model(s).Update("attendance_session_is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := store.FindValidSession(context.Background(), "tok-off")
	if err != nil || got != nil {
		t.Fatalf("FindValidSession(inactive) = %v, %v; want nil", got, err)
	}
}

func TestGormStoreDuplicateToken(t *testing.T) {
	db := dbtest.NewSQLite(t)
	seedSession(t, db, "tok-dup", "Math", time.Now().UTC().Add(time.Minute))

	err := NewGormStore(db).CreateSession(context.Background(), &attModel.AttendanceSessionModel{
		AttendanceSessionToken:    "tok-dup",
		AttendanceSessionSubject:  "Physics",
		AttendanceSessionExpiryAt: time.Now().UTC(),
		AttendanceSessionIsActive: true,
	})
	if !errors.Is(err, ErrDuplicateToken) {
		t.Fatalf("err = %v, want ErrDuplicateToken", err)
	}
}

func TestGormStoreMarkUniquePerStudentSession(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()
	seedStudent(t, db, "S001", "Asha")
	s := seedSession(t, db, "tok", "Math", time.Now().UTC().Add(time.Minute))

	exists, err := store.MarkExists(ctx, "S001", s.AttendanceSessionID)
	if err != nil || exists {
		t.Fatalf("MarkExists before = %v, %v", exists, err)
	}

	first := &attModel.AttendanceMarkModel{
		AttendanceMarkStudentCode: "S001",
		AttendanceMarkSessionID:   s.AttendanceSessionID,
		AttendanceMarkMarkedAt:    time.Now().UTC(),
	}
	if err := store.CreateMark(ctx, first); err != nil {
		t.Fatalf("CreateMark: %v", err)
	}
	exists, err = store.MarkExists(ctx, "S001", s.AttendanceSessionID)
	if err != nil || !exists {
		t.Fatalf("MarkExists after = %v, %v", exists, err)
	}

	dup := &attModel.AttendanceMarkModel{
		AttendanceMarkStudentCode: "S001",
		AttendanceMarkSessionID:   s.AttendanceSessionID,
		AttendanceMarkMarkedAt:    time.Now().UTC(),
	}
	if err := store.CreateMark(ctx, dup); !errors.Is(err, ErrDuplicateMark) {
		t.Fatalf("duplicate CreateMark err = %v, want ErrDuplicateMark", err)
	}
}

func TestGormStoreConcurrentMarksKeepOneRow(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	seedStudent(t, db, "S001", "Asha")
	s := seedSession(t, db, "tok", "Math", time.Now().UTC().Add(time.Minute))

	const n = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
		others   []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.CreateMark(context.Background(), &attModel.AttendanceMarkModel{
				AttendanceMarkStudentCode: "S001",
				AttendanceMarkSessionID:   s.AttendanceSessionID,
				AttendanceMarkMarkedAt:    time.Now().UTC(),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateMark):
				dups++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if ok != 1 || dups != n-1 {
		t.Fatalf("ok=%d dups=%d, want 1 and %d", ok, dups, n-1)
	}
	var rows int64
	db.Model(&attModel.AttendanceMarkModel{}).Count(&rows)
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
}

func TestReportQueries(t *testing.T) {
	db := dbtest.NewSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	teacherID := uuid.New()
	otherTeacher := uuid.New()
	math := subjectModel.SubjectModel{
		SubjectName: "Math", SubjectAcademicYear: "2024-2025", SubjectDivision: "A",
		SubjectTeacherUserID: teacherID,
	}
	if err := db.Create(&math).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	seedStudent(t, db, "S001", "Asha")
	seedStudent(t, db, "S002", "Bima")
	mathSess := seedSession(t, db, "tok-math", "Math", now.Add(time.Minute))
	bioSess := seedSession(t, db, "tok-bio", "Biology", now.Add(time.Minute))

	marks := []attModel.AttendanceMarkModel{
		{AttendanceMarkStudentCode: "S001", AttendanceMarkSessionID: mathSess.AttendanceSessionID, AttendanceMarkMarkedAt: now.Add(-2 * time.Minute)},
		{AttendanceMarkStudentCode: "S002", AttendanceMarkSessionID: mathSess.AttendanceSessionID, AttendanceMarkMarkedAt: now.Add(-time.Minute)},
		{AttendanceMarkStudentCode: "S001", AttendanceMarkSessionID: bioSess.AttendanceSessionID, AttendanceMarkMarkedAt: now},
	}
	for i := range marks {
		if err := store.CreateMark(ctx, &marks[i]); err != nil {
			t.Fatalf("CreateMark %d: %v", i, err)
		}
	}

	t.Run("all marks newest first", func(t *testing.T) {
		rows, total, err := ListMarks(ctx, db, helper.Paging{Page: 1, PerPage: 2, Offset: 0, Limit: 2})
		if err != nil {
			t.Fatalf("ListMarks: %v", err)
		}
		if total != 3 || len(rows) != 2 {
			t.Fatalf("total=%d len=%d, want 3 and 2", total, len(rows))
		}
		if rows[0].Subject != "Biology" || rows[0].StudentName != "Asha" {
			t.Errorf("first row = %+v", rows[0])
		}
		if rows[1].StudentCode != "S002" || rows[1].Token != "tok-math" {
			t.Errorf("second row = %+v", rows[1])
		}
	})

	t.Run("per subject only for owner", func(t *testing.T) {
		rows, err := ListSubjectMarks(ctx, db, math.SubjectID, teacherID)
		if err != nil {
			t.Fatalf("ListSubjectMarks: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("len = %d, want 2", len(rows))
		}
		for _, r := range rows {
			if r.Subject != "Math" {
				t.Errorf("row subject = %q", r.Subject)
			}
		}

		rows, err = ListSubjectMarks(ctx, db, math.SubjectID, otherTeacher)
		if err != nil {
			t.Fatalf("ListSubjectMarks(other): %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("other teacher sees %d rows", len(rows))
		}
	})
}
