package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attendku_backend/internals/databases/dbtest"
	"attendku_backend/internals/features/school/leaves/dto"
	m "attendku_backend/internals/features/school/leaves/model"
	subjectModel "attendku_backend/internals/features/school/subjects/model"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
)

func pdfHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("attachment", name)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["attachment"][0]
}

func kind(err error) apperror.Kind {
	if ae, ok := apperror.As(err); ok {
		return ae.Kind
	}
	return 0
}

func newService(t *testing.T) (*LeaveService, uuid.UUID) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	userID := uuid.New()
	st := userModel.StudentModel{StudentCode: "S001", StudentName: "Ayu", StudentUserID: &userID}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := New(db, t.TempDir())
	svc.Now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	return svc, userID
}

func TestSubmitAndReview(t *testing.T) {
	svc, userID := newService(t)
	ctx := context.Background()
	req := dto.SubmitLeaveRequest{LeaveType: "sick", StartDate: "2024-05-02", EndDate: "2024-05-03", Reason: "flu"}

	row, err := svc.Submit(ctx, userID, req, pdfHeader(t, "note.pdf", []byte("%PDF-1.4 hello")))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if row.LeaveApplicationStatus != m.LeaveStatusPending || row.LeaveApplicationStudentCode != "S001" {
		t.Errorf("row = %+v", row)
	}
	if row.LeaveApplicationAttachmentPath == nil {
		t.Fatal("attachment not saved")
	}

	path, err := svc.AttachmentPath(ctx, row.LeaveApplicationID)
	if err != nil {
		t.Fatalf("attachment path: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "%PDF-1.4 hello" {
		t.Errorf("file content = %q", got)
	}

	reviewer := uuid.New()
	updated, err := svc.UpdateStatus(ctx, row.LeaveApplicationID, m.LeaveStatusApproved, reviewer)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LeaveApplicationStatus != m.LeaveStatusApproved || updated.LeaveApplicationReviewedBy == nil || *updated.LeaveApplicationReviewedBy != reviewer {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.UpdateStatus(ctx, uuid.New(), m.LeaveStatusRejected, reviewer); kind(err) != apperror.KindNotFound {
		t.Errorf("unknown id err = %v", err)
	}

	mine, err := svc.ListForStudent(ctx, "S001")
	if err != nil || len(mine) != 1 {
		t.Fatalf("mine = %v, %v", mine, err)
	}
}

func TestSubmitWithoutStudentProfile(t *testing.T) {
	svc, _ := newService(t)
	req := dto.SubmitLeaveRequest{LeaveType: "sick", StartDate: "2024-05-02", EndDate: "2024-05-03", Reason: "flu"}
	if _, err := svc.Submit(context.Background(), uuid.New(), req, nil); kind(err) != apperror.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAttachmentMissing(t *testing.T) {
	svc, userID := newService(t)
	ctx := context.Background()
	req := dto.SubmitLeaveRequest{LeaveType: "family", StartDate: "2024-05-02", EndDate: "2024-05-02", Reason: "wedding"}

	noFile, err := svc.Submit(ctx, userID, req, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = svc.AttachmentPath(ctx, noFile.LeaveApplicationID)
	if ae, ok := apperror.As(err); !ok || ae.Message != "File not found" {
		t.Errorf("no attachment err = %v", err)
	}

	withFile, err := svc.Submit(ctx, userID, req, pdfHeader(t, "doc.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	os.Remove(filepath.Join(svc.UploadDir, *withFile.LeaveApplicationAttachmentPath))
	_, err = svc.AttachmentPath(ctx, withFile.LeaveApplicationID)
	if ae, ok := apperror.As(err); !ok || ae.Message != "File not found on server" {
		t.Errorf("deleted file err = %v", err)
	}
}

func TestListForSubjectChecksOwner(t *testing.T) {
	svc, userID := newService(t)
	ctx := context.Background()

	owner := uuid.New()
	sub := subjectModel.SubjectModel{
		SubjectID: uuid.New(), SubjectTeacherUserID: owner,
		SubjectName: "Biology", SubjectAcademicYear: "2024", SubjectDivision: "A",
	}
	if err := svc.DB.Create(&sub).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	req := dto.SubmitLeaveRequest{LeaveType: "sick", StartDate: "2024-05-02", EndDate: "2024-05-02", Reason: "fever"}
	if _, err := svc.Submit(ctx, userID, req, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	p := helper.Paging{Page: 1, PerPage: 50, Offset: 0, Limit: 50}
	list, total, err := svc.ListForSubject(ctx, sub.SubjectID, owner, p)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].LeaveApplicationStudentCode != "S001" {
		t.Errorf("owner list = %d/%d %+v", len(list), total, list)
	}

	_, _, err = svc.ListForSubject(ctx, sub.SubjectID, uuid.New(), p)
	if ae, ok := apperror.As(err); !ok || ae.Kind != apperror.KindNotFound || ae.Message != "Subject not found or access denied" {
		t.Errorf("other teacher err = %v", err)
	}
	_, _, err = svc.ListForSubject(ctx, uuid.New(), owner, p)
	if kind(err) != apperror.KindNotFound {
		t.Errorf("unknown subject err = %v", err)
	}
}
