package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
)

// memStore is an in-memory progress store for handler tests.
type memStore struct {
	docs map[int64]*models.UserProgress
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[int64]*models.UserProgress)}
}

func (m *memStore) Get(userID int64) (*models.UserProgress, error) {
	return m.docs[userID], nil
}

func (m *memStore) Save(p *models.UserProgress) error {
	m.docs[p.UserID] = p
	return nil
}

// Put lets memStore double as the fallback cache in tests.
func (m *memStore) Put(p *models.UserProgress) error {
	return m.Save(p)
}

func newTestProgressHandler() *ProgressHandler {
	svc := service.NewProgressService(newMemStore(), newMemStore(), 0, 0)
	// No email service: achievement notifications are skipped in tests
	return NewProgressHandler(svc, nil, nil)
}

func requestAsUser(t *testing.T, method, target string, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	user := &models.User{ID: 1, Email: "ana@example.com", DisplayName: "ana"}
	return req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
}

func decodeSnapshot(t *testing.T, recorder *httptest.ResponseRecorder) service.ProgressSnapshot {
	t.Helper()
	var snap service.ProgressSnapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snap); err != nil {
		t.Fatalf("response is not a snapshot: %v\n%s", err, recorder.Body.String())
	}
	return snap
}

func TestGetProgressNewUser(t *testing.T) {
	h := newTestProgressHandler()
	recorder := httptest.NewRecorder()

	h.GetProgress(recorder, requestAsUser(t, "GET", "/api/progress", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	snap := decodeSnapshot(t, recorder)
	if len(snap.Habits) != len(models.DefaultHabits) {
		t.Errorf("active habits = %d, want default set", len(snap.Habits))
	}
	if snap.Pet != "sick" {
		t.Errorf("pet = %q, want sick with nothing done", snap.Pet)
	}
}

func TestCompleteHabitEndpoint(t *testing.T) {
	h := newTestProgressHandler()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/habits/{habitID}/complete", func(w http.ResponseWriter, r *http.Request) {
		h.CompleteHabit(w, r)
	})

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, requestAsUser(t, "POST", "/api/habits/water/complete", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}
	snap := decodeSnapshot(t, recorder)
	if snap.CompletedToday != 1 {
		t.Errorf("completedToday = %d, want 1", snap.CompletedToday)
	}
	if snap.Progress.TotalCompleted != 1 {
		t.Errorf("total = %d, want 1", snap.Progress.TotalCompleted)
	}
}

func TestCompleteHabitUnknownIDReturns404(t *testing.T) {
	h := newTestProgressHandler()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/habits/{habitID}/complete", h.CompleteHabit)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, requestAsUser(t, "POST", "/api/habits/juggling/complete", ""))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestReplaceHabitsValidatesSize(t *testing.T) {
	h := newTestProgressHandler()
	recorder := httptest.NewRecorder()

	body := `{"habits": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}]}`
	h.ReplaceHabits(recorder, requestAsUser(t, "PUT", "/api/habits", body))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestReplaceHabitsEndpoint(t *testing.T) {
	h := newTestProgressHandler()
	recorder := httptest.NewRecorder()

	body := `{"habits": [
		{"id": "run", "name": "Morning Run"},
		{"id": "read", "name": "Read 20 pages"},
		{"id": "stretch", "name": "Stretch"}
	]}`
	h.ReplaceHabits(recorder, requestAsUser(t, "PUT", "/api/habits", body))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}
	snap := decodeSnapshot(t, recorder)
	if len(snap.Habits) != 3 {
		t.Errorf("active habits = %d, want 3", len(snap.Habits))
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	h := newTestProgressHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/habits/{habitID}/complete", h.CompleteHabit)
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, requestAsUser(t, "POST", "/api/habits/water/complete", ""))
	if recorder.Code != http.StatusOK {
		t.Fatalf("setup completion failed: %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	h.GetAnalytics(recorder, requestAsUser(t, "GET", "/api/analytics", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	var report service.AnalyticsReport
	if err := json.Unmarshal(recorder.Body.Bytes(), &report); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	if len(report.Weekly) != 7 {
		t.Errorf("weekly series = %d entries, want 7", len(report.Weekly))
	}
	if report.Weekly[6].Day != dates.Today() {
		t.Errorf("last weekly entry = %s, want today", report.Weekly[6].Day)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	h := newTestProgressHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/habits/{habitID}/complete", h.CompleteHabit)
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, requestAsUser(t, "POST", "/api/habits/water/complete", ""))
	if recorder.Code != http.StatusOK {
		t.Fatalf("setup completion failed: %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	h.Export(recorder, requestAsUser(t, "GET", "/api/export", ""))
	if recorder.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", recorder.Code)
	}
	if cd := recorder.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}
	exported := recorder.Body.String()

	recorder = httptest.NewRecorder()
	h.Import(recorder, requestAsUser(t, "POST", "/api/import", exported))
	if recorder.Code != http.StatusOK {
		t.Fatalf("import status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}
	snap := decodeSnapshot(t, recorder)
	if snap.Progress.TotalCompleted != 1 {
		t.Errorf("imported total = %d, want 1", snap.Progress.TotalCompleted)
	}
}

func TestImportRejectsGarbageWith400(t *testing.T) {
	h := newTestProgressHandler()
	recorder := httptest.NewRecorder()

	h.Import(recorder, requestAsUser(t, "POST", "/api/import", "{broken"))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}
