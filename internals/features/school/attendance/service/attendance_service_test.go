package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	attModel "attendku_backend/internals/features/school/attendance/model"
	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/helpers/apperror"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func setup(students ...string) (*Service, *attRepo.MemoryStore, *fakeClock) {
	clock := newFakeClock()
	store := attRepo.NewMemoryStore(clock.Now, students...)
	return New(store, WithClock(clock.Now)), store, clock
}

func intPtr(v int) *int { return &v }

func issue(t *testing.T, svc *Service, ttl *int) *IssuedSession {
	t.Helper()
	out, err := svc.Issue(context.Background(), IssueInput{
		Subject:     "Mathematics",
		WindowStart: "2025-03-10T09:00",
		WindowEnd:   "2025-03-10T10:00",
		TTLSeconds:  ttl,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return out
}

func wantKind(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	ae, ok := apperror.As(err)
	if !ok {
		t.Fatalf("expected apperror %s %q, got %v", kind, msg, err)
	}
	if ae.Kind != kind || (msg != "" && ae.Message != msg) {
		t.Fatalf("expected %s %q, got %s %q", kind, msg, ae.Kind, ae.Message)
	}
}

func TestIssueDefaultsAndShape(t *testing.T) {
	svc, _, clock := setup()
	out := issue(t, svc, nil)

	if out.TTLSeconds != DefaultTTLSeconds {
		t.Fatalf("ttl = %d, want %d", out.TTLSeconds, DefaultTTLSeconds)
	}
	if !out.ExpiryAt.Equal(clock.Now().Add(300 * time.Second)) {
		t.Fatalf("expiry = %v", out.ExpiryAt)
	}
	if out.Subject != "Mathematics" || out.WindowStart != "2025-03-10T09:00" || out.WindowEnd != "2025-03-10T10:00" {
		t.Fatalf("unexpected echo %+v", out)
	}
	if !strings.HasPrefix(out.Token, "attendance_20250310_090000_") {
		t.Fatalf("unexpected token %q", out.Token)
	}
}

func TestIssueConfiguredDefaultTTL(t *testing.T) {
	clock := newFakeClock()
	svc := New(attRepo.NewMemoryStore(clock.Now), WithClock(clock.Now), WithDefaultTTL(60))
	if out := issue(t, svc, nil); out.TTLSeconds != 60 {
		t.Fatalf("ttl = %d, want 60", out.TTLSeconds)
	}
}

func TestIssueZeroTTLMeansDefault(t *testing.T) {
	svc, _, _ := setup()
	if out := issue(t, svc, intPtr(0)); out.TTLSeconds != DefaultTTLSeconds {
		t.Fatalf("ttl = %d, want %d", out.TTLSeconds, DefaultTTLSeconds)
	}
}

func TestIssueTokensAreUniqueWithinSameSecond(t *testing.T) {
	svc, _, _ := setup()
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		tok := issue(t, svc, nil).Token
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token %q after %d issues", tok, i)
		}
		seen[tok] = struct{}{}
	}
}

func TestIssueDoesNotValidateWindowOrTTL(t *testing.T) {
	svc, _, _ := setup("S1")
	out, err := svc.Issue(context.Background(), IssueInput{
		Subject:     "Physics",
		WindowStart: "2025-03-10T11:00",
		WindowEnd:   "2025-03-10T10:00",
		TTLSeconds:  intPtr(-5),
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if out.TTLSeconds != -5 {
		t.Fatalf("ttl = %d", out.TTLSeconds)
	}

	_, err = svc.Mark(context.Background(), "S1", out.Token)
	wantKind(t, err, apperror.KindNotFound, MsgExpiredOrInvalid)
}

func TestMarkOnceThenAlreadyMarked(t *testing.T) {
	svc, store, _ := setup("S1", "S2")
	tok := issue(t, svc, intPtr(300)).Token
	ctx := context.Background()

	res, err := svc.Mark(ctx, "S1", tok)
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if res.Message != "Attendance marked for Mathematics at 2025-03-10T09:00" {
		t.Fatalf("unexpected message %q", res.Message)
	}

	_, err = svc.Mark(ctx, "S1", tok)
	wantKind(t, err, apperror.KindConflict, MsgAlreadyMarked)

	if _, err := svc.Mark(ctx, "S2", tok); err != nil {
		t.Fatalf("S2 mark: %v", err)
	}
	if n := store.MarkCount(); n != 2 {
		t.Fatalf("mark count = %d, want 2", n)
	}
}

func TestMarkExpiredToken(t *testing.T) {
	svc, _, clock := setup("S1")
	tok := issue(t, svc, intPtr(1)).Token

	clock.Advance(2 * time.Second)

	_, err := svc.Mark(context.Background(), "S1", tok)
	wantKind(t, err, apperror.KindNotFound, MsgExpiredOrInvalid)
}

func TestMarkAtExactExpiryIsAccepted(t *testing.T) {
	svc, _, clock := setup("S1", "S2")
	tok := issue(t, svc, intPtr(30)).Token

	clock.Advance(30 * time.Second)
	if _, err := svc.Mark(context.Background(), "S1", tok); err != nil {
		t.Fatalf("mark at boundary: %v", err)
	}

	clock.Advance(time.Nanosecond)
	_, err := svc.Mark(context.Background(), "S2", tok)
	wantKind(t, err, apperror.KindNotFound, MsgExpiredOrInvalid)
}

func TestMarkUnknownStudentWinsOverTokenState(t *testing.T) {
	svc, _, clock := setup("S1")
	valid := issue(t, svc, intPtr(300)).Token
	expired := issue(t, svc, intPtr(1)).Token
	clock.Advance(5 * time.Second)

	for name, tok := range map[string]string{
		"valid token":   valid,
		"expired token": expired,
		"unknown token": "attendance_nope",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Mark(context.Background(), "GHOST", tok)
			wantKind(t, err, apperror.KindNotFound, MsgStudentNotFound)
		})
	}
}

func TestMarkUnknownToken(t *testing.T) {
	svc, _, _ := setup("S1")
	_, err := svc.Mark(context.Background(), "S1", "attendance_19990101_000000_x")
	wantKind(t, err, apperror.KindNotFound, MsgExpiredOrInvalid)
}

func TestMarkExpiredCheckedBeforeDuplicate(t *testing.T) {
	svc, _, clock := setup("S1")
	tok := issue(t, svc, intPtr(10)).Token
	if _, err := svc.Mark(context.Background(), "S1", tok); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)

	_, err := svc.Mark(context.Background(), "S1", tok)
	wantKind(t, err, apperror.KindNotFound, MsgExpiredOrInvalid)
}

func TestMarkConcurrentSamePairRecordsOnce(t *testing.T) {
	svc, store, _ := setup("S1")
	tok := issue(t, svc, intPtr(300)).Token

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, confl int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Mark(context.Background(), "S1", tok)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperror.Is(err, apperror.KindConflict):
				confl++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || confl != n-1 {
		t.Fatalf("ok=%d conflict=%d", ok, confl)
	}
	if store.MarkCount() != 1 {
		t.Fatalf("mark count = %d", store.MarkCount())
	}
}

// racyStore melewatkan pre-check supaya jalur duplicate dari insert teruji.
type racyStore struct {
	*attRepo.MemoryStore
}

func (racyStore) MarkExists(context.Context, string, uuid.UUID) (bool, error) { return false, nil }

func TestMarkDuplicateFromInsertMapsToAlreadyMarked(t *testing.T) {
	clock := newFakeClock()
	store := racyStore{attRepo.NewMemoryStore(clock.Now, "S1")}
	svc := New(store, WithClock(clock.Now))
	tok := issue(t, svc, nil).Token

	if _, err := svc.Mark(context.Background(), "S1", tok); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Mark(context.Background(), "S1", tok)
	wantKind(t, err, apperror.KindConflict, MsgAlreadyMarked)
}

type failingStore struct {
	attRepo.Store
	err error
}

func (f failingStore) CreateSession(context.Context, *attModel.AttendanceSessionModel) error {
	return f.err
}

func (f failingStore) StudentExists(context.Context, string) (bool, error) { return false, f.err }

func TestStorageFailuresAreNotRetried(t *testing.T) {
	boom := errors.New("db down")
	svc := New(failingStore{err: boom})

	_, err := svc.Issue(context.Background(), IssueInput{Subject: "Math"})
	wantKind(t, err, apperror.KindStorage, "")
	if !errors.Is(err, boom) {
		t.Fatalf("cause lost: %v", err)
	}

	_, err = svc.Mark(context.Background(), "S1", "tok")
	wantKind(t, err, apperror.KindStorage, "")
}

func TestDisplayRemainingSeconds(t *testing.T) {
	svc, _, clock := setup()
	tok := issue(t, svc, intPtr(120)).Token

	clock.Advance(45 * time.Second)
	d, err := svc.Display(context.Background(), tok)
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if d.RemainingSeconds != 75 {
		t.Fatalf("remaining = %d, want 75", d.RemainingSeconds)
	}

	clock.Advance(10 * time.Minute)
	d, err = svc.Display(context.Background(), tok)
	if err != nil {
		t.Fatalf("Display after expiry: %v", err)
	}
	if d.RemainingSeconds != 0 {
		t.Fatalf("remaining = %d, want 0", d.RemainingSeconds)
	}

	_, err = svc.Display(context.Background(), "missing")
	wantKind(t, err, apperror.KindNotFound, "")
}
