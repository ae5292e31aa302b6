package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"attendku_backend/internals/constants"
	"attendku_backend/internals/databases/dbtest"
	attRepo "attendku_backend/internals/features/school/attendance/repository"
	"attendku_backend/internals/features/school/attendance/service"
	userModel "attendku_backend/internals/features/users/user/model"
	helper "attendku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setup: app dengan middleware palsu yang mengisi Locals dari header X-Role / X-Student.
func setup(t *testing.T) *fiber.App {
	t.Helper()
	db := dbtest.NewSQLite(t)
	for _, code := range []string{"S1", "S2"} {
		if err := db.Create(&userModel.StudentModel{StudentCode: code, StudentName: "Student " + code}).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	ctl := NewAttendanceController(db, service.New(attRepo.NewGormStore(db)))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, uuid.New())
		c.Locals(helper.LocRole, c.Get("X-Role"))
		c.Locals(helper.LocStudentCode, c.Get("X-Student"))
		return c.Next()
	})
	app.Post("/sessions", ctl.IssueSession)
	app.Get("/sessions/:token/qr", ctl.DisplaySession)
	app.Post("/mark", ctl.Mark)
	app.Get("/attendance", ctl.List)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, role, student string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", role)
	req.Header.Set("X-Student", student)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func issueToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, env := do(t, app, http.MethodPost, "/sessions", constants.RoleTeacher, "", map[string]any{
		"subject": "Math", "window_start": "2024-01-01T09:00", "window_end": "2024-01-01T10:00",
	})
	if code != http.StatusCreated {
		t.Fatalf("issue status = %d (%s)", code, env.Message)
	}
	var data struct {
		Token      string    `json:"token"`
		TTLSeconds int       `json:"ttl_seconds"`
		ExpiryAt   time.Time `json:"expiry_at"`
		QRCode     string    `json:"qr_code"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode issue: %v", err)
	}
	if data.TTLSeconds != service.DefaultTTLSeconds {
		t.Errorf("ttl = %d", data.TTLSeconds)
	}
	if !strings.HasPrefix(data.QRCode, "data:image/png;base64,") {
		t.Errorf("qr_code = %.30q", data.QRCode)
	}
	return data.Token
}

func TestIssueRequiresFields(t *testing.T) {
	app := setup(t)
	code, _ := do(t, app, http.MethodPost, "/sessions", constants.RoleTeacher, "", map[string]any{"subject": "Math"})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", code)
	}
}

func TestMarkFlow(t *testing.T) {
	app := setup(t)
	token := issueToken(t, app)

	cases := []struct {
		name     string
		role     string
		claim    string
		body     map[string]any
		wantCode int
		wantMsg  string
	}{
		{"first mark", constants.RoleTeacher, "", map[string]any{"student_id": "S1", "token": token}, 200, ""},
		{"duplicate", constants.RoleTeacher, "", map[string]any{"student_id": "S1", "token": token}, 409, service.MsgAlreadyMarked},
		{"unknown student", constants.RoleTeacher, "", map[string]any{"student_id": "S9", "token": token}, 404, service.MsgStudentNotFound},
		{"bad token", constants.RoleTeacher, "", map[string]any{"student_id": "S2", "token": "nope"}, 404, service.MsgExpiredOrInvalid},
		{"student other code", constants.RoleStudent, "S1", map[string]any{"student_id": "S2", "token": token}, 403, ""},
		{"student without profile", constants.RoleStudent, "", map[string]any{"student_id": "S2", "token": token}, 403, "Student profile not found for this account"},
		{"student without profile, empty id", constants.RoleStudent, "", map[string]any{"token": token}, 403, ""},
		{"student own code from claim", constants.RoleStudent, "S2", map[string]any{"token": token}, 200, ""},
		{"missing token", constants.RoleTeacher, "", map[string]any{"student_id": "S2"}, 422, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, app, http.MethodPost, "/mark", tc.role, tc.claim, tc.body)
			if code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%s)", code, tc.wantCode, env.Message)
			}
			if tc.wantMsg != "" && env.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", env.Message, tc.wantMsg)
			}
		})
	}

	code, env := do(t, app, http.MethodGet, "/attendance", constants.RoleTeacher, "", nil)
	if code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	var rows []attRepo.MarkRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestDisplaySession(t *testing.T) {
	app := setup(t)
	token := issueToken(t, app)

	code, env := do(t, app, http.MethodGet, "/sessions/"+token+"/qr", constants.RoleTeacher, "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var d struct {
		Subject          string `json:"subject"`
		RemainingSeconds int    `json:"remaining_seconds"`
		QRCode           string `json:"qr_code"`
	}
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Subject != "Math" || d.RemainingSeconds <= 0 || d.RemainingSeconds > service.DefaultTTLSeconds || d.QRCode == "" {
		t.Errorf("display = %+v", d)
	}

	code, _ = do(t, app, http.MethodGet, "/sessions/unknown/qr", constants.RoleTeacher, "", nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown token status = %d", code)
	}
}
