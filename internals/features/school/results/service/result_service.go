// file: internals/features/school/results/service/result_service.go
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"attendku_backend/internals/features/school/results/dto"
	m "attendku_backend/internals/features/school/results/model"
	subjectModel "attendku_backend/internals/features/school/subjects/model"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MsgResultSaved  = "Result saved successfully"
	MsgCSVTooShort  = "CSV must have header and data rows"
	csvMinColumns   = 6
	csvRemarksIndex = 6
)

type ResultService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *ResultService {
	return &ResultService{DB: db}
}

func (s *ResultService) subjectExists(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&subjectModel.SubjectModel{}).Where("subject_id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *ResultService) Create(ctx context.Context, teacherUserID uuid.UUID, req dto.CreateResultRequest) (*m.ResultModel, error) {
	ok, err := s.subjectExists(ctx, s.DB, req.SubjectID)
	if err != nil {
		return nil, apperror.Storage("Failed to save result", err)
	}
	if !ok {
		return nil, apperror.NotFound("Subject not found")
	}

	row := &m.ResultModel{
		ResultStudentCode:   req.StudentID,
		ResultSubjectID:     req.SubjectID,
		ResultExamType:      req.ExamType,
		ResultMarksObtained: *req.MarksObtained,
		ResultMaxMarks:      *req.MaxMarks,
		ResultRemarks:       req.Remarks,
		ResultTeacherUserID: teacherUserID,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperror.Storage("Failed to save result", err)
	}
	return row, nil
}

// parseRow: student_id,name,subject_id,exam_type,marks_obtained,max_marks[,remarks]
func parseRow(rec []string, teacherUserID uuid.UUID) (*m.ResultModel, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	subjectID, err := uuid.Parse(rec[2])
	if err != nil {
		return nil, fmt.Errorf("invalid subject_id %q", rec[2])
	}
	marks, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid marks_obtained %q", rec[4])
	}
	maxMarks, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid max_marks %q", rec[5])
	}
	if rec[0] == "" || rec[3] == "" {
		return nil, errors.New("student_id and exam_type are required")
	}

	row := &m.ResultModel{
		ResultStudentCode:   rec[0],
		ResultSubjectID:     subjectID,
		ResultExamType:      rec[3],
		ResultMarksObtained: marks,
		ResultMaxMarks:      maxMarks,
		ResultTeacherUserID: teacherUserID,
	}
	if len(rec) > csvRemarksIndex && rec[csvRemarksIndex] != "" {
		remarks := rec[csvRemarksIndex]
		row.ResultRemarks = &remarks
	}
	return row, nil
}

// UploadCSV memasukkan nilai dari CSV. Baris header dilewati, baris < 6 kolom
// diabaikan, baris yang gagal di-parse / disimpan dihitung sebagai error.
// Baris yang valid tetap tersimpan walau ada baris lain yang gagal.
func (s *ResultService) UploadCSV(ctx context.Context, teacherUserID uuid.UUID, fileName string, r io.Reader) (*dto.UploadSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	type line struct {
		no  int
		rec []string
		err error
	}
	var lines []line
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			lines = append(lines, line{no: pe.StartLine, err: pe.Err})
			continue
		}
		if err != nil {
			return nil, apperror.Validation("Failed to process CSV file")
		}
		no, _ := cr.FieldPos(0)
		lines = append(lines, line{no: no, rec: rec})
	}
	if len(lines) < 2 {
		return nil, apperror.Validation(MsgCSVTooShort)
	}

	sum := &dto.UploadSummary{Errors: map[string]string{}}
	known := map[uuid.UUID]bool{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ln := range lines[1:] {
			key := strconv.Itoa(ln.no)
			if ln.err != nil {
				sum.Errors[key] = ln.err.Error()
				continue
			}
			if len(ln.rec) < csvMinColumns {
				continue
			}

			row, err := parseRow(ln.rec, teacherUserID)
			if err != nil {
				sum.Errors[key] = err.Error()
				continue
			}

			exists, seen := known[row.ResultSubjectID]
			if !seen {
				ok, err := s.subjectExists(ctx, tx, row.ResultSubjectID)
				if err != nil {
					return err
				}
				known[row.ResultSubjectID], exists = ok, ok
			}
			if !exists {
				sum.Errors[key] = "subject not found"
				continue
			}

			// savepoint per baris supaya satu baris gagal tidak membatalkan transaksi postgres
			if err := tx.Transaction(func(rowTx *gorm.DB) error {
				return rowTx.Create(row).Error
			}); err != nil {
				sum.Errors[key] = "failed to save"
				continue
			}
			sum.Inserted++
		}
		sum.Failed = len(sum.Errors)

		logRow := &m.ResultUploadModel{
			ResultUploadTeacherUserID: teacherUserID,
			ResultUploadFileName:      fileName,
			ResultUploadInserted:      sum.Inserted,
			ResultUploadFailed:        sum.Failed,
		}
		if len(sum.Errors) > 0 {
			logRow.ResultUploadErrors = datatypes.JSONMap{}
			for k, v := range sum.Errors {
				logRow.ResultUploadErrors[k] = v
			}
		}
		if err := tx.Create(logRow).Error; err != nil {
			return err
		}
		sum.UploadID = logRow.ResultUploadID
		return nil
	})
	if err != nil {
		return nil, apperror.Storage("Failed to process CSV file", err)
	}
	return sum, nil
}

// UploadMessage: "Uploaded {n} results successfully. {m} errors."
func UploadMessage(sum *dto.UploadSummary) string {
	return fmt.Sprintf("Uploaded %d results successfully. %d errors.", sum.Inserted, sum.Failed)
}

// ListForStudent: nilai milik student, terbaru dulu.
func (s *ResultService) ListForStudent(ctx context.Context, studentCode string) ([]dto.ResultItem, error) {
	rows := []dto.ResultItem{}
	err := s.DB.WithContext(ctx).
		Table("results AS r").
		Select(`r.result_id AS id,
			r.result_student_code AS student_id,
			r.result_subject_id AS subject_id,
			COALESCE(sub.subject_name, '') AS subject_name,
			r.result_exam_type AS exam_type,
			r.result_marks_obtained AS marks_obtained,
			r.result_max_marks AS max_marks,
			r.result_remarks AS remarks,
			r.result_created_at AS created_at`).
		Joins("LEFT JOIN subjects sub ON sub.subject_id = r.result_subject_id").
		Where("r.result_student_code = ?", studentCode).
		Order("r.result_created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("Failed to load results", err)
	}
	for i := range rows {
		if rows[i].MaxMarks > 0 {
			rows[i].Percentage = math.Round(rows[i].MarksObtained/rows[i].MaxMarks*1000) / 10
		}
	}
	return rows, nil
}

// ListUploads: riwayat upload CSV milik teacher.
func (s *ResultService) ListUploads(ctx context.Context, teacherUserID uuid.UUID) ([]m.ResultUploadModel, error) {
	out := []m.ResultUploadModel{}
	err := s.DB.WithContext(ctx).
		Where("result_upload_teacher_user_id = ?", teacherUserID).
		Order("result_upload_created_at DESC").
		Limit(50).
		Find(&out).Error
	if err != nil {
		return nil, apperror.Storage("Failed to load uploads", err)
	}
	return out, nil
}
