// internals/features/school/attendance/repository/memory_store.go
package repository

import (
	"context"
	"sync"
	"time"

	attModel "attendku_backend/internals/features/school/attendance/model"

	"github.com/google/uuid"
)

type markKey struct {
	student string
	session uuid.UUID
}

// MemoryStore: Store in-memory dengan clock yang bisa diganti (dipakai unit test).
type MemoryStore struct {
	mu       sync.Mutex
	now      func() time.Time
	students map[string]struct{}
	sessions map[string]attModel.AttendanceSessionModel
	marks    map[markKey]attModel.AttendanceMarkModel
}

func NewMemoryStore(now func() time.Time, studentCodes ...string) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	s := &MemoryStore{
		now:      now,
		students: make(map[string]struct{}),
		sessions: make(map[string]attModel.AttendanceSessionModel),
		marks:    make(map[markKey]attModel.AttendanceMarkModel),
	}
	for _, code := range studentCodes {
		s.students[code] = struct{}{}
	}
	return s
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) AddStudent(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[code] = struct{}{}
}

func (s *MemoryStore) CreateSession(ctx context.Context, m *attModel.AttendanceSessionModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.sessions[m.AttendanceSessionToken]; dup {
		return ErrDuplicateToken
	}
	if m.AttendanceSessionID == uuid.Nil {
		m.AttendanceSessionID = uuid.New()
	}
	m.AttendanceSessionCreatedAt = s.now()
	s.sessions[m.AttendanceSessionToken] = *m
	return nil
}

func (s *MemoryStore) StudentExists(ctx context.Context, studentCode string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.students[studentCode]
	return ok, nil
}

func (s *MemoryStore) FindValidSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error) {
	m, err := s.FindActiveSession(ctx, token)
	if m == nil || err != nil {
		return nil, err
	}
	if s.now().After(m.AttendanceSessionExpiryAt) {
		return nil, nil
	}
	return m, nil
}

func (s *MemoryStore) FindActiveSession(ctx context.Context, token string) (*attModel.AttendanceSessionModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[token]
	if !ok || !m.AttendanceSessionIsActive {
		return nil, nil
	}
	return &m, nil
}

func (s *MemoryStore) MarkExists(ctx context.Context, studentCode string, sessionID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.marks[markKey{studentCode, sessionID}]
	return ok, nil
}

func (s *MemoryStore) CreateMark(ctx context.Context, m *attModel.AttendanceMarkModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := markKey{m.AttendanceMarkStudentCode, m.AttendanceMarkSessionID}
	if _, dup := s.marks[k]; dup {
		return ErrDuplicateMark
	}
	if m.AttendanceMarkID == uuid.Nil {
		m.AttendanceMarkID = uuid.New()
	}
	s.marks[k] = *m
	return nil
}

// MarkCount: jumlah mark tersimpan (untuk assertion test).
func (s *MemoryStore) MarkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marks)
}
