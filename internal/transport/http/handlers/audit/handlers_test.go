package audithandler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/auth"
	"salarydecoder/internal/transport/http/middleware"
)

type fakeReader struct {
	events map[string][]audit.Event
}

func (f fakeReader) Count(_ context.Context, actorID string) (int, error) {
	return len(f.events[actorID]), nil
}

func (f fakeReader) List(_ context.Context, actorID string, limit, offset int) ([]audit.Event, error) {
	all := f.events[actorID]
	if offset >= len(all) {
		return []audit.Event{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func newRouter() http.Handler {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reader := fakeReader{events: map[string][]audit.Event{
		"u1": {
			{ID: "e2", Action: audit.ActionPayslipDelete, EntityType: audit.EntityPayslip, EntityID: "p1", CreatedAt: at.Add(time.Minute)},
			{ID: "e1", Action: audit.ActionPayslipSave, EntityType: audit.EntityPayslip, EntityID: "p1", CreatedAt: at},
		},
	}}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if uid := req.Header.Get("X-Test-User"); uid != "" {
				req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: uid}))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(reader).RegisterRoutes(r)
	return r
}

func TestListEvents(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit/events?limit=1", nil)
	req.Header.Set("X-Test-User", "u1")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "2" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []audit.Event `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "e2" {
		t.Fatalf("unexpected events %+v", body.Data)
	}
}

func TestExportEventsCSV(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit/events/export", nil)
	req.Header.Set("X-Test-User", "u1")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 || records[2][1] != audit.ActionPayslipSave || records[2][6] != "2025-03-01T12:00:00Z" {
		t.Fatalf("unexpected csv %v", records)
	}
}

func TestAuditRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
