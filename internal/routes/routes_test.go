package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memstore"
)

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}

type server struct {
	t      *testing.T
	router *gin.Engine
	tokens map[string]string
}

func newServer(t *testing.T, extraHealth map[string]handlers.Pinger) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir, err := auth.DemoDirectory("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("DemoDirectory error: %v", err)
	}

	cfg := &config.Config{
		Env:           "test",
		Timezone:      "UTC",
		BusinessOpen:  9 * 60,
		BusinessClose: 21 * 60,
		SlotStep:      15,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:    cfg,
		Log:       zap.NewNop(),
		Store:     memstore.New(),
		Catalog:   catalog.Default(),
		Directory: dir,
		Tokens:    auth.NewTokens("test-secret", time.Hour),
		Auditor:   nopAuditor{},
		Health:    extraHealth,
	})

	s := &server{t: t, router: r, tokens: map[string]string{}}
	for _, user := range []string{"oyuna", "tuul", "bold"} {
		s.tokens[user] = s.login(user, "secret")
	}
	return s
}

func (s *server) do(method, path, user string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) login(user, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": user, "password": password})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", user, w.Code, w.Body.String())
	}
	var resp handlers.LoginResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

func booking(employee, date, clock, service string) map[string]string {
	return map[string]string{
		"customer_name":  "Saraa",
		"customer_phone": "99112233",
		"service_type":   service,
		"employee_name":  employee,
		"date":           date,
		"time":           clock,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestLogin_BadPassword(t *testing.T) {
	s := newServer(t, nil)
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "tuul", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAppointmentsFlow(t *testing.T) {
	s := newServer(t, nil)

	// book
	w := s.do(http.MethodPost, "/api/appointments", "tuul", booking("Tuul", "2026-03-10", "10:00", "Haircut"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	created := decode[dto.AppointmentDTO](t, w)
	if created.EndTime != "10:45" || created.Status != "scheduled" {
		t.Fatalf("created = %+v", created)
	}

	// overlapping booking
	w = s.do(http.MethodPost, "/api/appointments", "oyuna", booking("Tuul", "2026-03-10", "10:30", "Manicure"))
	if w.Code != http.StatusConflict {
		t.Fatalf("conflict: %d %s", w.Code, w.Body.String())
	}
	if e := decode[httperr.HTTPError](t, w); e.Code != "conflict" || e.Message != "time conflict with existing appointment at 10:00" {
		t.Fatalf("conflict body = %+v", e)
	}

	// employee booking for another
	w = s.do(http.MethodPost, "/api/appointments", "tuul", booking("Bold", "2026-03-10", "10:00", "Haircut"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-employee booking: %d", w.Code)
	}

	// validation
	w = s.do(http.MethodPost, "/api/appointments", "oyuna", booking("Tuul", "2026-03-10", "23:30", "Massage"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("past midnight: %d", w.Code)
	}

	// list scoping
	s.do(http.MethodPost, "/api/appointments", "oyuna", booking("Bold", "2026-03-10", "10:00", "Haircut"))
	w = s.do(http.MethodGet, "/api/appointments?from=2026-03-10&to=2026-03-10", "tuul", nil)
	if list := decode[struct{ Total int }](t, w); w.Code != http.StatusOK || list.Total != 1 {
		t.Fatalf("tuul list: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/appointments", "oyuna", nil)
	if list := decode[struct{ Total int }](t, w); list.Total != 2 {
		t.Fatalf("manager list: %s", w.Body.String())
	}

	// transitions
	path := fmt.Sprintf("/api/appointments/%d", created.ID)
	if w = s.do(http.MethodPatch, path+"/complete", "bold", nil); w.Code != http.StatusForbidden {
		t.Fatalf("bold completing tuul's: %d", w.Code)
	}
	if w = s.do(http.MethodPatch, path+"/complete", "tuul", nil); w.Code != http.StatusOK {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}
	if w = s.do(http.MethodPatch, path+"/cancel", "oyuna", nil); w.Code != http.StatusConflict {
		t.Fatalf("cancel completed: %d", w.Code)
	}

	// delete
	if w = s.do(http.MethodDelete, path, "tuul", nil); w.Code != http.StatusForbidden {
		t.Fatalf("employee delete: %d", w.Code)
	}
	if w = s.do(http.MethodDelete, path, "oyuna", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	if w = s.do(http.MethodGet, path, "oyuna", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
	if w = s.do(http.MethodGet, "/api/appointments/abc", "oyuna", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestReschedule_AndConflictCheck(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(http.MethodPost, "/api/appointments", "oyuna", booking("Tuul", "2026-03-10", "10:00", "Manicure"))
	ap := decode[dto.AppointmentDTO](t, w)

	w = s.do(http.MethodPost, "/api/appointments/conflicts", "tuul", map[string]any{
		"employee_name": "Tuul", "date": "2026-03-10", "time": "10:30", "duration_min": 30,
	})
	res := decode[handlers.CheckConflictResponse](t, w)
	if w.Code != http.StatusOK || !res.Conflict || len(res.Appointments) != 1 {
		t.Fatalf("check: %d %s", w.Code, w.Body.String())
	}

	path := fmt.Sprintf("/api/appointments/%d/reschedule", ap.ID)
	body := map[string]string{"date": "2026-03-11", "time": "15:00"}
	if w = s.do(http.MethodPatch, path, "tuul", body); w.Code != http.StatusForbidden {
		t.Fatalf("employee reschedule: %d", w.Code)
	}
	w = s.do(http.MethodPatch, path, "oyuna", body)
	if moved := decode[dto.AppointmentDTO](t, w); w.Code != http.StatusOK || moved.AppointmentDate != "2026-03-11" || moved.EndTime != "16:00" {
		t.Fatalf("reschedule: %d %s", w.Code, w.Body.String())
	}
}

func TestAvailabilityAndCatalog(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(http.MethodGet, "/api/appointments/availability?employee=Tuul&date=2026-03-10&service=Haircut", "tuul", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability: %d %s", w.Code, w.Body.String())
	}
	if got := decode[struct{ Total int }](t, w); got.Total == 0 {
		t.Fatalf("no slots")
	}

	w = s.do(http.MethodGet, "/api/services?category=nails", "tuul", nil)
	if got := decode[struct{ Total int }](t, w); got.Total != 2 {
		t.Fatalf("services: %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/employees", "tuul", nil)
	if got := decode[struct{ Data []string }](t, w); len(got.Data) != 1 || got.Data[0] != "Tuul" {
		t.Fatalf("employees for tuul: %s", w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/employees", "oyuna", nil)
	if got := decode[struct{ Data []string }](t, w); len(got.Data) != 3 {
		t.Fatalf("employees for manager: %s", w.Body.String())
	}
}

func TestDashboardMetrics_ManagerOnly(t *testing.T) {
	s := newServer(t, nil)
	s.do(http.MethodPost, "/api/appointments", "oyuna", booking("Tuul", "2026-03-10", "10:00", "Haircut"))

	if w := s.do(http.MethodGet, "/api/dashboard/metrics", "tuul", nil); w.Code != http.StatusForbidden {
		t.Fatalf("employee metrics: %d", w.Code)
	}
	w := s.do(http.MethodGet, "/api/dashboard/metrics?from=2026-03-01&to=2026-03-31", "oyuna", nil)
	if got := decode[struct{ Total, Scheduled int }](t, w); w.Code != http.StatusOK || got.Total != 1 || got.Scheduled != 1 {
		t.Fatalf("metrics: %d %s", w.Code, w.Body.String())
	}
}

func TestUnauthenticated(t *testing.T) {
	s := newServer(t, nil)
	if w := s.do(http.MethodGet, "/api/appointments", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t, map[string]handlers.Pinger{
		"redis": func(context.Context) error { return errors.New("down") },
	})

	if w := s.do(http.MethodGet, "/health/live", "", nil); w.Code != http.StatusOK {
		t.Fatalf("live: %d", w.Code)
	}
	w := s.do(http.MethodGet, "/health/ready", "", nil)
	got := decode[handlers.ReadinessResponse](t, w)
	if w.Code != http.StatusServiceUnavailable || got.Dependencies["store"] != "ok" || got.Dependencies["redis"] != "down" {
		t.Fatalf("ready: %d %s", w.Code, w.Body.String())
	}
}
