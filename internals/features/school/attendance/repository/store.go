// internals/features/school/attendance/repository/store.go
package repository

import (
	"context"
	"errors"

	attModel "attendku_backend/internals/features/school/attendance/model"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateMark: unique (student, session) dilanggar saat insert.
	ErrDuplicateMark = errors.New("attendance mark already exists")
	// ErrDuplicateToken: token session sudah dipakai.
	ErrDuplicateToken = errors.New("attendance session token already exists")
)

// Store adalah semua akses data yang dibutuhkan issuer & recorder.
// Find* mengembalikan (nil, nil) kalau tidak ada baris yang cocok.
type Store interface {
	CreateSession(ctx context.Context, s *attModel.AttendanceSessionModel) error
	StudentExists(ctx context.Context, studentCode string) (bool, error)

	// FindValidSession: token cocok, is_active, dan expiry >= now (clock storage, inklusif).
	FindValidSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error)
	// FindActiveSession: token cocok dan is_active, tanpa cek expiry.
	FindActiveSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error)

	MarkExists(ctx context.Context, studentCode string, sessionID uuid.UUID) (bool, error)
	CreateMark(ctx context.Context, m *attModel.AttendanceMarkModel) error
}
