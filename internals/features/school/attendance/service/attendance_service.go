// internals/features/school/attendance/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	attModel "attendku_backend/internals/features/school/attendance/model"
	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
)

const DefaultTTLSeconds = 300

// Alasan penolakan mark. Client membedakan ketiganya, jangan diubah.
const (
	MsgStudentNotFound  = "student not found"
	MsgExpiredOrInvalid = "expired or invalid"
	MsgAlreadyMarked    = "already marked"
)

type Service struct {
	store      attRepo.Store
	now        func() time.Time
	defaultTTL int
}

type Option func(*Service)

// WithClock mengganti sumber waktu aplikasi (issuance & sisa detik QR).
// Cek expiry saat mark tetap memakai clock storage.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithDefaultTTL(seconds int) Option {
	return func(s *Service) {
		if seconds != 0 {
			s.defaultTTL = seconds
		}
	}
}

func New(store attRepo.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, defaultTTL: DefaultTTLSeconds}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* ===================== ISSUE ===================== */

type IssueInput struct {
	Subject     string
	WindowStart string
	WindowEnd   string
	// nil atau 0 → default TTL. Nilai negatif tidak ditolak (session langsung kedaluwarsa).
	TTLSeconds *int
	CreatedBy  *uuid.UUID
}

type IssuedSession struct {
	Token       string    `json:"token"`
	Subject     string    `json:"subject"`
	WindowStart string    `json:"window_start"`
	WindowEnd   string    `json:"window_end"`
	TTLSeconds  int       `json:"ttl_seconds"`
	ExpiryAt    time.Time `json:"expiry_at"`
}

// NewToken: attendance_<yyyymmdd_hhmmss>_<uuid v4>
func NewToken(now time.Time) string {
	return fmt.Sprintf("attendance_%s_%s", now.Format("20060102_150405"), uuid.NewString())
}

func (s *Service) Issue(ctx context.Context, in IssueInput) (*IssuedSession, error) {
	ttl := s.defaultTTL
	if in.TTLSeconds != nil && *in.TTLSeconds != 0 {
		ttl = *in.TTLSeconds
	}

	now := s.now().UTC()
	row := &attModel.AttendanceSessionModel{
		AttendanceSessionToken:           NewToken(now),
		AttendanceSessionSubject:         in.Subject,
		AttendanceSessionWindowStart:     in.WindowStart,
		AttendanceSessionWindowEnd:       in.WindowEnd,
		AttendanceSessionTTLSeconds:      ttl,
		AttendanceSessionExpiryAt:        now.Add(time.Duration(ttl) * time.Second),
		AttendanceSessionIsActive:        true,
		AttendanceSessionCreatedByUserID: in.CreatedBy,
	}
	if err := s.store.CreateSession(ctx, row); err != nil {
		return nil, apperror.Storage("Failed to create attendance session", err)
	}

	return &IssuedSession{
		Token:       row.AttendanceSessionToken,
		Subject:     row.AttendanceSessionSubject,
		WindowStart: row.AttendanceSessionWindowStart,
		WindowEnd:   row.AttendanceSessionWindowEnd,
		TTLSeconds:  ttl,
		ExpiryAt:    row.AttendanceSessionExpiryAt,
	}, nil
}

/* ===================== MARK ===================== */

type MarkResult struct {
	Message     string    `json:"message"`
	StudentID   string    `json:"student_id"`
	Subject     string    `json:"subject"`
	WindowStart string    `json:"window_start"`
	MarkedAt    time.Time `json:"marked_at"`
}

// Mark menjalankan guard berurutan: student → session valid → belum pernah mark → insert.
func (s *Service) Mark(ctx context.Context, studentCode, token string) (*MarkResult, error) {
	ok, err := s.store.StudentExists(ctx, studentCode)
	if err != nil {
		return nil, apperror.Storage("Failed to mark attendance", err)
	}
	if !ok {
		return nil, apperror.NotFound(MsgStudentNotFound)
	}

	sess, err := s.store.FindValidSession(ctx, token)
	if err != nil {
		return nil, apperror.Storage("Failed to mark attendance", err)
	}
	if sess == nil {
		return nil, apperror.NotFound(MsgExpiredOrInvalid)
	}

	marked, err := s.store.MarkExists(ctx, studentCode, sess.AttendanceSessionID)
	if err != nil {
		return nil, apperror.Storage("Failed to mark attendance", err)
	}
	if marked {
		return nil, apperror.Conflict(MsgAlreadyMarked)
	}

	mark := &attModel.AttendanceMarkModel{
		AttendanceMarkStudentCode: studentCode,
		AttendanceMarkSessionID:   sess.AttendanceSessionID,
		AttendanceMarkMarkedAt:    s.now().UTC(),
	}
	if err := s.store.CreateMark(ctx, mark); err != nil {
		// request paralel untuk pasangan yang sama lolos cek di atas
		if errors.Is(err, attRepo.ErrDuplicateMark) {
			return nil, apperror.Conflict(MsgAlreadyMarked)
		}
		return nil, apperror.Storage("Failed to mark attendance", err)
	}

	return &MarkResult{
		Message:     fmt.Sprintf("Attendance marked for %s at %s", sess.AttendanceSessionSubject, sess.AttendanceSessionWindowStart),
		StudentID:   studentCode,
		Subject:     sess.AttendanceSessionSubject,
		WindowStart: sess.AttendanceSessionWindowStart,
		MarkedAt:    mark.AttendanceMarkMarkedAt,
	}, nil
}

/* ===================== DISPLAY ===================== */

type Display struct {
	Token            string `json:"token"`
	Subject          string `json:"subject"`
	WindowStart      string `json:"window_start"`
	WindowEnd        string `json:"window_end"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// Display: data untuk layar QR guru; sisa detik tidak pernah negatif.
func (s *Service) Display(ctx context.Context, token string) (*Display, error) {
	sess, err := s.store.FindActiveSession(ctx, token)
	if err != nil {
		return nil, apperror.Storage("Failed to load attendance session", err)
	}
	if sess == nil {
		return nil, apperror.NotFound("QR session not found or expired")
	}

	remaining := int(sess.AttendanceSessionExpiryAt.Sub(s.now()) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return &Display{
		Token:            sess.AttendanceSessionToken,
		Subject:          sess.AttendanceSessionSubject,
		WindowStart:      sess.AttendanceSessionWindowStart,
		WindowEnd:        sess.AttendanceSessionWindowEnd,
		RemainingSeconds: remaining,
	}, nil
}
