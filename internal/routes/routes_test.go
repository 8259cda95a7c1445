package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/appointease/internal/config"
	"github.com/BruksfildServices01/appointease/internal/export"
	infraRepo "github.com/BruksfildServices01/appointease/internal/infra/repository"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	now := time.Date(2030, 5, 10, 8, 0, 0, 0, time.UTC)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:     db,
		Config: &config.Config{JWTSecret: "test-secret", Timezone: "UTC"},
		Log:    zerolog.Nop(),
		Events: notify.Discard,
		Now:    func() time.Time { return now },
	})

	return &testServer{t: t, engine: r, db: db}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) expect(w *httptest.ResponseRecorder, status int, out any) {
	s.t.Helper()
	if w.Code != status {
		s.t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
}

func (s *testServer) signup(username string) string {
	s.t.Helper()
	var session struct {
		Token string `json:"token"`
	}
	s.expect(s.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":  username,
		"full_name": username,
		"password":  "pass1234",
	}), http.StatusCreated, &session)
	return session.Token
}

func (s *testServer) admin() string {
	s.t.Helper()
	deps := ucUser.Deps{Repo: infraRepo.NewUserGormRepository(s.db)}
	if _, err := ucUser.NewSeedAdmin(deps).Execute(context.Background(), "root", "rootpass"); err != nil {
		s.t.Fatalf("seed admin: %v", err)
	}

	var session struct {
		Token string `json:"token"`
	}
	s.expect(s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "root",
		"password": "rootpass",
	}), http.StatusOK, &session)
	return session.Token
}

type errorBody struct {
	Code   string            `json:"error_code"`
	Fields map[string]string `json:"fields"`
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	s.expect(s.do(http.MethodGet, "/health", "", nil), http.StatusOK, nil)
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	admin := s.admin()

	var slots struct {
		Data []struct {
			Start string `json:"start"`
		} `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/availability?date=2030-05-10", alice, nil), http.StatusOK, &slots)
	if len(slots.Data) != 7 {
		t.Fatalf("expected 7 default slots, got %+v", slots.Data)
	}

	booking := gin.H{
		"title":            "Consultation",
		"appointment_date": "2030-05-10",
		"start_time":       "10:00",
		"mode":             "online",
		"url":              "https://meet.example.com/a",
	}

	var ap models.Appointment
	s.expect(s.do(http.MethodPost, "/api/me/appointments", alice, booking), http.StatusCreated, &ap)
	if ap.Status != "pending" || ap.EndTime != "11:00" {
		t.Fatalf("unexpected appointment: %+v", ap)
	}

	var conflict errorBody
	s.expect(s.do(http.MethodPost, "/api/me/appointments", bob, booking), http.StatusConflict, &conflict)
	if conflict.Code != "slot_taken" {
		t.Fatalf("expected slot_taken, got %+v", conflict)
	}

	s.expect(s.do(http.MethodGet, "/api/availability?date=2030-05-10", bob, nil), http.StatusOK, &slots)
	if len(slots.Data) != 6 {
		t.Fatalf("expected the booked slot to disappear, got %+v", slots.Data)
	}

	// regular users cannot decide
	s.expect(s.do(http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/approve", alice, nil), http.StatusForbidden, nil)

	s.expect(s.do(http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/approve", admin, nil), http.StatusOK, &ap)
	if ap.Status != "approved" {
		t.Fatalf("expected approved, got %s", ap.Status)
	}

	var invalid errorBody
	s.expect(s.do(http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/reject", admin, nil), http.StatusConflict, &invalid)
	if invalid.Code != "invalid_transition" {
		t.Fatalf("expected invalid_transition, got %+v", invalid)
	}

	var rr models.RescheduleRequest
	s.expect(s.do(http.MethodPost, "/api/me/appointments/"+ap.ID+"/reschedule-requests", alice, gin.H{
		"requested_date":       "2030-05-11",
		"requested_start_time": "14:00",
		"requested_end_time":   "15:00",
		"reason":               "conflict at work",
	}), http.StatusCreated, &rr)

	var pending struct {
		Data []struct {
			ID          string `json:"id"`
			CurrentDate string `json:"current_date"`
		} `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/admin/reschedule-requests?status=pending", admin, nil), http.StatusOK, &pending)
	if len(pending.Data) != 1 || pending.Data[0].CurrentDate != "2030-05-10" {
		t.Fatalf("unexpected pending requests: %+v", pending.Data)
	}

	s.expect(s.do(http.MethodPatch, "/api/admin/reschedule-requests/"+rr.ID+"/approve", admin, nil), http.StatusOK, nil)

	var mine struct {
		Data []models.Appointment `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/me/appointments", alice, nil), http.StatusOK, &mine)
	if len(mine.Data) != 1 || mine.Data[0].Date != "2030-05-11" || mine.Data[0].Status != "approved" {
		t.Fatalf("expected the moved approved appointment, got %+v", mine.Data)
	}

	var none struct {
		Data []models.Appointment `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/me/appointments", bob, nil), http.StatusOK, &none)
	if len(none.Data) != 0 {
		t.Fatalf("bob should not see alice's appointments, got %+v", none.Data)
	}
}

func TestValidationAndAuthErrors(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	admin := s.admin()

	s.expect(s.do(http.MethodGet, "/api/me", "", nil), http.StatusUnauthorized, nil)

	var verr errorBody
	s.expect(s.do(http.MethodPost, "/api/me/appointments", alice, gin.H{
		"appointment_date": "2030-05-10",
	}), http.StatusBadRequest, &verr)
	if verr.Code != "validation_failed" || verr.Fields["title"] == "" || verr.Fields["start_time"] == "" {
		t.Fatalf("expected field errors, got %+v", verr)
	}

	s.expect(s.do(http.MethodPut, "/api/admin/settings/working-hours", admin, gin.H{
		"start_time":    "17:00",
		"end_time":      "09:00",
		"slot_duration": 60,
	}), http.StatusBadRequest, &verr)
	if verr.Fields["end_time"] == "" {
		t.Fatalf("expected end_time error, got %+v", verr)
	}

	var login errorBody
	s.expect(s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "nope",
	}), http.StatusUnauthorized, &login)
	if login.Code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %+v", login)
	}

	s.expect(s.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":  "alice",
		"full_name": "Alice Again",
		"password":  "pass1234",
	}), http.StatusConflict, nil)

	s.expect(s.do(http.MethodPatch, "/api/admin/appointments/missing/approve", admin, nil), http.StatusNotFound, nil)
}

func TestAdminSurface(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	admin := s.admin()

	var me models.User
	s.expect(s.do(http.MethodGet, "/api/me", alice, nil), http.StatusOK, &me)

	var meeting struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.expect(s.do(http.MethodPost, "/api/admin/meetings", admin, gin.H{
		"title":           "Kickoff",
		"meeting_date":    "2030-05-12",
		"start_time":      "09:00",
		"end_time":        "10:00",
		"mode":            "in-person",
		"participant_ids": []string{me.ID},
	}), http.StatusCreated, &meeting)
	if meeting.Status != "upcoming" {
		t.Fatalf("expected upcoming, got %+v", meeting)
	}

	var meetings struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/me/meetings", alice, nil), http.StatusOK, &meetings)
	if len(meetings.Data) != 1 || meetings.Data[0].ID != meeting.ID {
		t.Fatalf("expected alice's meeting, got %+v", meetings.Data)
	}

	s.expect(s.do(http.MethodPost, "/api/me/messages", alice, gin.H{"content": "hello"}), http.StatusCreated, nil)
	s.expect(s.do(http.MethodPost, "/api/admin/messages/"+me.ID, admin, gin.H{"content": "hi alice"}), http.StatusCreated, nil)

	var convs struct {
		Data []struct {
			UserID string `json:"user_id"`
		} `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/admin/messages", admin, nil), http.StatusOK, &convs)
	if len(convs.Data) != 1 || convs.Data[0].UserID != me.ID {
		t.Fatalf("expected one conversation with alice, got %+v", convs.Data)
	}

	var users struct {
		Data []struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	s.expect(s.do(http.MethodGet, "/api/admin/users?role=user", admin, nil), http.StatusOK, &users)
	if len(users.Data) != 1 || users.Data[0].Username != "alice" {
		t.Fatalf("unexpected users: %+v", users.Data)
	}

	var dash struct {
		Users int64 `json:"users"`
	}
	s.expect(s.do(http.MethodGet, "/api/admin/dashboard", admin, nil), http.StatusOK, &dash)
	if dash.Users != 1 {
		t.Fatalf("expected 1 user on the dashboard, got %d", dash.Users)
	}

	w := s.do(http.MethodGet, "/api/admin/export", admin, nil)
	s.expect(w, http.StatusOK, nil)
	if w.Header().Get("Content-Type") != export.ContentType {
		t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
	}

	s.expect(s.do(http.MethodGet, "/api/admin/audit-logs", admin, nil), http.StatusOK, nil)

	// no hub in tests
	s.expect(s.do(http.MethodGet, "/api/events", alice, nil), http.StatusServiceUnavailable, nil)

	s.expect(s.do(http.MethodDelete, "/api/admin/meetings/"+meeting.ID, admin, nil), http.StatusNoContent, nil)
}
