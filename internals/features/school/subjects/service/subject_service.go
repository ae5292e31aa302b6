// file: internals/features/school/subjects/service/subject_service.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/features/school/subjects/dto"
	m "attendku_backend/internals/features/school/subjects/model"
	subjectRepo "attendku_backend/internals/features/school/subjects/repository"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/apperror"
	"attendku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MsgSubjectNotFound = "Subject not found or access denied"

// Header CSV rekap kehadiran; urutan kolom dipakai spreadsheet sekolah.
var AttendanceCSVHeader = []string{"Student Name", "Student ID", "Subject", "Attendance Date"}

type SubjectService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *SubjectService {
	return &SubjectService{DB: db}
}

func (s *SubjectService) Create(ctx context.Context, teacherUserID uuid.UUID, req dto.CreateSubjectRequest) (*m.SubjectModel, error) {
	row := req.ToModel(teacherUserID)
	if err := subjectRepo.Create(ctx, s.DB, &row); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Subject already exists")
		}
		return nil, apperror.Storage("Failed to create subject", err)
	}
	return &row, nil
}

func (s *SubjectService) ListByTeacher(ctx context.Context, teacherUserID uuid.UUID) ([]m.SubjectModel, error) {
	list, err := subjectRepo.ListByTeacher(ctx, s.DB, teacherUserID)
	if err != nil {
		return nil, apperror.Storage("Failed to load subjects", err)
	}
	return list, nil
}

func (s *SubjectService) ListAll(ctx context.Context) ([]m.SubjectModel, error) {
	list, err := subjectRepo.ListAll(ctx, s.DB)
	if err != nil {
		return nil, apperror.Storage("Failed to load subjects", err)
	}
	return list, nil
}

// Delete: hanya pemilik; semua data turunan ikut terhapus dalam satu transaksi.
func (s *SubjectService) Delete(ctx context.Context, id, teacherUserID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := subjectRepo.FindOwned(ctx, tx, id, teacherUserID)
		if err != nil {
			return apperror.Storage("Failed to delete subject", err)
		}
		if sub == nil {
			return apperror.NotFound(MsgSubjectNotFound)
		}
		if err := subjectRepo.DeleteCascade(tx, sub); err != nil {
			return apperror.Storage("Failed to delete subject", err)
		}
		return nil
	})
}

// Attendance: rekap kehadiran satu subject milik teacher.
func (s *SubjectService) Attendance(ctx context.Context, id, teacherUserID uuid.UUID) (*m.SubjectModel, []attRepo.MarkRow, error) {
	sub, err := subjectRepo.FindOwned(ctx, s.DB, id, teacherUserID)
	if err != nil {
		return nil, nil, apperror.Storage("Failed to load attendance", err)
	}
	if sub == nil {
		return nil, nil, apperror.NotFound(MsgSubjectNotFound)
	}
	rows, err := attRepo.ListSubjectMarks(ctx, s.DB, id, teacherUserID)
	if err != nil {
		return nil, nil, apperror.Storage("Failed to load attendance", err)
	}
	return sub, rows, nil
}

// StudentsAndSubjects: data dropdown form input nilai.
func (s *SubjectService) StudentsAndSubjects(ctx context.Context, teacherUserID uuid.UUID) (*dto.StudentsSubjectsResponse, error) {
	var students []userModel.StudentModel
	if err := s.DB.WithContext(ctx).Order("student_name ASC").Find(&students).Error; err != nil {
		return nil, apperror.Storage("Failed to load students", err)
	}
	subjects, err := s.ListByTeacher(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	out := &dto.StudentsSubjectsResponse{
		Students: make([]dto.StudentOption, 0, len(students)),
		Subjects: make([]dto.SubjectOption, 0, len(subjects)),
	}
	for _, st := range students {
		out.Students = append(out.Students, dto.StudentOption{ID: st.StudentCode, Name: st.StudentName})
	}
	for _, sub := range subjects {
		out.Subjects = append(out.Subjects, dto.SubjectOption{
			ID: sub.SubjectID, Name: sub.SubjectName, Year: sub.SubjectAcademicYear, Division: sub.SubjectDivision,
		})
	}
	return out, nil
}

// WriteAttendanceCSV menulis header + satu baris per mark; tanggal di timezone sekolah.
func WriteAttendanceCSV(w io.Writer, rows []attRepo.MarkRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AttendanceCSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.StudentName, r.StudentCode, r.Subject, dbtime.FormatSchool(r.MarkedAt)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename: "<subject>_attendance.csv", tanpa karakter yang merusak header.
func CSVFilename(subjectName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n', ';':
			return '_'
		}
		return r
	}, strings.TrimSpace(subjectName))
	if name == "" {
		name = "subject"
	}
	return fmt.Sprintf("%s_attendance.csv", name)
}
