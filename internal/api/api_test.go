package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
	"github.com/factoryops/dashboard-service/internal/notify"
	"github.com/factoryops/dashboard-service/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	os.Setenv("JWT_SECRET", "test-secret")
	code := m.Run()
	os.Unsetenv("JWT_SECRET")
	os.Exit(code)
}

// newTestRouter builds the full router over a seeded memory store
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	m := store.NewMemory()
	if err := store.Seed(context.Background(), m); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return NewRouter(NewHandler(m, notify.NewHub()))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	// Raw spaces are invalid in a request target and make httptest.NewRequest
	// panic; encode them as a real client would.
	req := httptest.NewRequest(method, strings.ReplaceAll(path, " ", "%20"), &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestListFactories(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/factories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	factories := decode[[]models.Factory](t, w)
	if len(factories) != 3 {
		t.Fatalf("got %d factories, want 3", len(factories))
	}
}

func TestCreateFactory(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/factories", gin.H{
		"name": "Chennai Plant", "location": "Chennai, Tamil Nadu",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[models.Factory](t, w)
	if created.ID != 4 {
		t.Fatalf("created factory id = %d, want 4", created.ID)
	}

	// Same name again is a duplicate
	w = doJSON(t, r, http.MethodPost, "/api/factories", gin.H{
		"name": "Chennai Plant", "location": "Chennai, Tamil Nadu",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", w.Code)
	}
}

func TestCreateFactory_RejectsUnknownFields(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/factories", gin.H{
		"name": "Extra Plant", "location": "Somewhere", "bogus": true,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"username": "sanjay", "password": "password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[map[string]json.RawMessage](t, w)
	if string(resp["success"]) != "true" {
		t.Fatalf("success = %s, want true", resp["success"])
	}
	if sessionCookieValue(w) == "" {
		t.Fatal("expected session cookie to be set")
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"username": "sanjay", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"username": "nobody", "password": "password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}

func sessionCookieValue(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	return ""
}

func TestCurrentUser(t *testing.T) {
	r := newTestRouter(t)

	login := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"username": "sanjay", "password": "password",
	})
	token := sessionCookieValue(login)
	if token == "" {
		t.Fatal("login did not set session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/current-user", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	user := decode[models.User](t, w)
	if user.Username != "sanjay" {
		t.Fatalf("username = %q, want sanjay", user.Username)
	}

	// Bearer header works as a cookie fallback
	req = httptest.NewRequest(http.MethodGet, "/api/auth/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", w.Code)
	}

	// No token at all
	w = doJSON(t, r, http.MethodGet, "/api/auth/current-user", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge >= 0 {
			t.Fatalf("session cookie not expired: MaxAge=%d", c.MaxAge)
		}
	}
}

func TestGetUserByID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	user := decode[models.User](t, w)
	if user.Username != "sanjay" {
		t.Fatalf("username = %q, want sanjay", user.Username)
	}

	w = doJSON(t, r, http.MethodGet, "/api/users/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/users/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing user, got %d", w.Code)
	}
}

func TestCreateUser(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"username": "meera", "password": "secret", "name": "Meera Shah",
		"role": "Supervisor", "factory": "Pune Assembly Unit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate username
	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"username": "meera", "password": "secret", "name": "Meera Shah",
		"role": "Supervisor", "factory": "Pune Assembly Unit",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username, got %d", w.Code)
	}

	// Unknown factory
	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"username": "ravi", "password": "secret", "name": "Ravi Iyer",
		"role": "Operator", "factory": "Nowhere Plant",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown factory, got %d", w.Code)
	}
}

func TestGetDashboard(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/dashboard/Jaipur Manufacturing Unit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got := decode[models.DashboardMetrics](t, w)
	want := models.DashboardMetrics{
		ProductionEfficiency: 67,
		ActiveLines:          "4/6",
		TodaysOutput:         4223,
		Attendance:           "52/60",
		AttendanceRate:       87,
	}
	if got != want {
		t.Fatalf("dashboard = %+v, want %+v", got, want)
	}
}

func TestGetDashboard_UnknownFactoryIsEmpty(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/dashboard/Nowhere Plant", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decode[models.DashboardMetrics](t, w)
	if got.ActiveLines != "0/0" || got.Attendance != "0/0" {
		t.Fatalf("expected zeroed metrics, got %+v", got)
	}
}

func TestCreateProductionLine_DerivesFields(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/production", gin.H{
		"name": "Line 07", "product": "Gears", "target": 100, "completed": 100,
		"factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	line := decode[models.ProductionLine](t, w)
	if line.Efficiency != 100 {
		t.Fatalf("efficiency = %d, want derived 100", line.Efficiency)
	}
	if line.Status != models.LineCompleted {
		t.Fatalf("status = %q, want Completed", line.Status)
	}
}

func TestCreateProductionLine_UnknownFactory(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/production", gin.H{
		"name": "Line 07", "product": "Gears", "target": 100,
		"factoryId": "Nowhere Plant",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateProductionLine(t *testing.T) {
	r := newTestRouter(t)

	// Line 01 is seeded at 968/1200; completing it should re-derive both
	// efficiency and status.
	w := doJSON(t, r, http.MethodPatch, "/api/production/1", gin.H{"completed": 1200})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	line := decode[models.ProductionLine](t, w)
	if line.Efficiency != 100 || line.Status != models.LineCompleted {
		t.Fatalf("got efficiency=%d status=%q, want 100/Completed", line.Efficiency, line.Status)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/production/abc", gin.H{"completed": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/production/999", gin.H{"completed": 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing line, got %d", w.Code)
	}
}

func TestCreateInventoryItem_DerivesStatus(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{
		"material": "Lubricant", "currentStock": 10, "unit": "liters",
		"minRequired": 100, "factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	item := decode[models.Inventory](t, w)
	if item.Status != models.StockCritical {
		t.Fatalf("status = %q, want Critical", item.Status)
	}
}

func TestCreateInventoryItem_RejectsClientStatus(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{
		"material": "Lubricant", "currentStock": 10, "unit": "liters",
		"minRequired": 100, "status": "Adequate",
		"factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when client sends status, got %d", w.Code)
	}
}

func TestUpdateInventoryItem_Reclassifies(t *testing.T) {
	r := newTestRouter(t)

	// Copper Wire is seeded at 85/100 (Low Stock); restocking makes it Adequate.
	w := doJSON(t, r, http.MethodPatch, "/api/inventory/3", gin.H{"currentStock": 400})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	item := decode[models.Inventory](t, w)
	if item.Status != models.StockAdequate {
		t.Fatalf("status = %q, want Adequate", item.Status)
	}
}

func TestCreateWorkforceDepartment_InvariantEnforced(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/workforce", gin.H{
		"department": "Maintenance", "total": 10, "present": 8, "onLeave": 1,
		"absent": 1, "factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/workforce", gin.H{
		"department": "Logistics", "total": 10, "present": 8, "onLeave": 1,
		"absent": 5, "factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unbalanced headcounts, got %d", w.Code)
	}
}

func TestUpdateWorkforceDepartment_HeadcountRules(t *testing.T) {
	r := newTestRouter(t)

	// Partial headcount patch is rejected
	w := doJSON(t, r, http.MethodPatch, "/api/workforce/1", gin.H{"present": 30})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partial headcounts, got %d", w.Code)
	}

	// Complete but unbalanced is rejected
	w = doJSON(t, r, http.MethodPatch, "/api/workforce/1", gin.H{
		"total": 38, "present": 30, "onLeave": 3, "absent": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unbalanced headcounts, got %d", w.Code)
	}

	// Complete and balanced goes through
	w = doJSON(t, r, http.MethodPatch, "/api/workforce/1", gin.H{
		"total": 38, "present": 30, "onLeave": 3, "absent": 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	dept := decode[models.Workforce](t, w)
	if dept.Present != 30 || dept.Absent != 5 {
		t.Fatalf("patch not applied: %+v", dept)
	}

	// Renaming alone needs no headcounts
	w = doJSON(t, r, http.MethodPatch, "/api/workforce/1", gin.H{"department": "Floor Ops"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for name-only patch, got %d", w.Code)
	}
}

func TestListAlerts_UnreadFirst(t *testing.T) {
	r := newTestRouter(t)

	// Mark the first seeded alert as read; it should sort after the others.
	w := doJSON(t, r, http.MethodPatch, "/api/alerts/1", gin.H{"read": true})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/alerts/Jaipur Manufacturing Unit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	alerts := decode[[]models.Alert](t, w)
	if len(alerts) != 4 {
		t.Fatalf("got %d alerts, want 4", len(alerts))
	}
	if alerts[len(alerts)-1].ID != 1 {
		t.Fatalf("read alert should sort last, got order ending in id %d", alerts[len(alerts)-1].ID)
	}
	for _, a := range alerts[:len(alerts)-1] {
		if a.Read {
			t.Fatalf("read alert %d sorted before unread", a.ID)
		}
	}
}

func TestCreateAlert(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/alerts", gin.H{
		"type": "info", "title": "Shift Change", "message": "Night shift started",
		"time": "just now", "factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/alerts", gin.H{
		"type": "fatal", "title": "Bad", "message": "Bad",
		"time": "now", "factoryId": "Jaipur Manufacturing Unit",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid alert type, got %d", w.Code)
	}
}
