// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"attendku_backend/internals/features/school/attendance/service"
)

/* =========================================================
   ISSUE
   ========================================================= */

// IssueSessionRequest: window disimpan apa adanya (format bebas, biasanya "2006-01-02T15:04").
type IssueSessionRequest struct {
	Subject     string `json:"subject" validate:"required,max=160"`
	WindowStart string `json:"window_start" validate:"required,max=40"`
	WindowEnd   string `json:"window_end" validate:"required,max=40"`
	TTLSeconds  *int   `json:"ttl_seconds"`
}

func (r *IssueSessionRequest) Normalize() {
	r.Subject = strings.TrimSpace(r.Subject)
	r.WindowStart = strings.TrimSpace(r.WindowStart)
	r.WindowEnd = strings.TrimSpace(r.WindowEnd)
}

type IssueSessionResponse struct {
	Token       string    `json:"token"`
	Subject     string    `json:"subject"`
	WindowStart string    `json:"window_start"`
	WindowEnd   string    `json:"window_end"`
	TTLSeconds  int       `json:"ttl_seconds"`
	ExpiryAt    time.Time `json:"expiry_at"`
	QRCode      string    `json:"qr_code"`
}

func NewIssueSessionResponse(s *service.IssuedSession, qr string) IssueSessionResponse {
	return IssueSessionResponse{
		Token:       s.Token,
		Subject:     s.Subject,
		WindowStart: s.WindowStart,
		WindowEnd:   s.WindowEnd,
		TTLSeconds:  s.TTLSeconds,
		ExpiryAt:    s.ExpiryAt,
		QRCode:      qr,
	}
}

/* =========================================================
   MARK
   ========================================================= */

type MarkRequest struct {
	StudentID string `json:"student_id" validate:"required,max=50"`
	Token     string `json:"token" validate:"required,max=120"`
}

func (r *MarkRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Token = strings.TrimSpace(r.Token)
}

/* =========================================================
   DISPLAY
   ========================================================= */

type DisplayResponse struct {
	*service.Display
	QRCode string `json:"qr_code"`
}
