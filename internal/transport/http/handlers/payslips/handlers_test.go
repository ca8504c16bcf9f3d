package payslipshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/auth"
	"salarydecoder/internal/domain/payslip"
	"salarydecoder/internal/domain/salary"
	"salarydecoder/internal/transport/http/middleware"
)

type fakeService struct {
	mu    sync.Mutex
	seq   int
	items map[string][]payslip.Record
}

func newFakeService() *fakeService {
	return &fakeService{items: map[string][]payslip.Record{}}
}

func (f *fakeService) Save(_ context.Context, ownerID string, in salary.Input) (payslip.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	res := salary.Compute(in)
	p := payslip.Payslip{
		ID:           fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq),
		Month:        in.Month,
		Basic:        in.Basic,
		GrossSalary:  res.GrossSalary,
		InHandSalary: res.InHandSalary,
		CTC:          res.CTC,
		CreatedAt:    time.Date(2025, 1, 1, 0, f.seq, 0, 0, time.UTC),
	}
	f.items[ownerID] = append([]payslip.Record{{Payslip: p, Input: in}}, f.items[ownerID]...)
	return p, nil
}

func (f *fakeService) List(_ context.Context, ownerID string, limit, offset int) (payslip.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.items[ownerID]
	items := []payslip.Payslip{}
	for i := offset; i < len(all) && len(items) < limit; i++ {
		items = append(items, all[i].Payslip)
	}
	return payslip.Page{Items: items, Total: len(all), Limit: limit, Offset: offset}, nil
}

func (f *fakeService) Summary(_ context.Context, ownerID string) (payslip.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.items[ownerID]
	out := payslip.Summary{Count: len(all)}
	if len(all) == 0 {
		return out, nil
	}
	for _, rec := range all {
		out.AverageInHand += rec.InHandSalary / float64(len(all))
		out.AverageCTC += rec.CTC / float64(len(all))
	}
	latest := all[0].Payslip
	out.Latest = &latest
	return out, nil
}

func (f *fakeService) Report(_ context.Context, ownerID, id string) (payslip.Record, salary.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.items[ownerID] {
		if rec.ID == id {
			return rec, salary.Compute(rec.Input), nil
		}
	}
	return payslip.Record{}, salary.Result{}, payslip.ErrNotFound
}

func (f *fakeService) Delete(_ context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, rec := range f.items[ownerID] {
		if rec.ID == id {
			f.items[ownerID] = append(f.items[ownerID][:i], f.items[ownerID][i+1:]...)
			return nil
		}
	}
	return payslip.ErrNotFound
}

type memoryKeeper struct {
	mu      sync.Mutex
	entries map[string]struct {
		hash     string
		response json.RawMessage
	}
}

func newMemoryKeeper() *memoryKeeper {
	return &memoryKeeper{entries: map[string]struct {
		hash     string
		response json.RawMessage
	}{}}
}

func (m *memoryKeeper) Check(_ context.Context, userID, endpoint, key, requestHash string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[userID+"|"+endpoint+"|"+key]
	if !ok {
		return nil, false, nil
	}
	if entry.hash != requestHash {
		return nil, false, middleware.ErrIdempotencyConflict
	}
	return entry.response, true, nil
}

func (m *memoryKeeper) Save(_ context.Context, userID, endpoint, key, requestHash string, response json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID+"|"+endpoint+"|"+key] = struct {
		hash     string
		response json.RawMessage
	}{requestHash, response}
	return nil
}

type auditLog struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (a *auditLog) Record(_ context.Context, entry audit.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

type fixture struct {
	router  http.Handler
	service *fakeService
	audit   *auditLog
}

func newFixture() fixture {
	svc := newFakeService()
	log := &auditLog{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if uid := req.Header.Get("X-Test-User"); uid != "" {
				req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: uid}))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(svc, log, newMemoryKeeper()).RegisterRoutes(r)
	return fixture{router: r, service: svc, audit: log}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (f fixture) do(t *testing.T, method, path, user, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, env
}

func payslipBody(month string) string {
	return fmt.Sprintf(`{"month":%q,"basic":50000,"hra":20000,"specialAllowance":15000,"otherAllowance":5000,
"employeePF":6000,"employerPF":6000,"professionalTax":200,"incomeTax":8000}`, month)
}

func TestPayslipsRequireUser(t *testing.T) {
	f := newFixture()
	rec, env := f.do(t, http.MethodGet, "/payslips", "", "", nil)
	if rec.Code != http.StatusUnauthorized || env.Error.Code != "unauthorized" {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSaveListDeleteFlow(t *testing.T) {
	f := newFixture()
	for _, month := range []string{"January", "february"} {
		rec, _ := f.do(t, http.MethodPost, "/payslips", "u1", payslipBody(month), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := f.do(t, http.MethodGet, "/payslips?limit=10", "u1", "", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "2" {
		t.Fatalf("unexpected list response %d: %s", rec.Code, rec.Body.String())
	}
	var page payslip.Page
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Month != "February" {
		t.Fatalf("expected newest first, got %+v", page.Items)
	}
	if page.Items[0].InHandSalary != 75800 {
		t.Fatalf("unexpected snapshot %+v", page.Items[0])
	}

	rec, _ = f.do(t, http.MethodGet, "/payslips", "u2", "", nil)
	if rec.Header().Get("X-Total-Count") != "0" {
		t.Fatalf("expected other user to see nothing")
	}

	id := page.Items[0].ID
	rec, _ = f.do(t, http.MethodDelete, "/payslips/"+id, "u2", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other owner, got %d", rec.Code)
	}
	rec, _ = f.do(t, http.MethodDelete, "/payslips/"+id, "u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected delete to succeed, got %d", rec.Code)
	}
	rec, _ = f.do(t, http.MethodDelete, "/payslips/"+id, "u1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected second delete to 404, got %d", rec.Code)
	}

	actions := []string{}
	for _, entry := range f.audit.entries {
		actions = append(actions, entry.Action)
	}
	want := []string{audit.ActionPayslipSave, audit.ActionPayslipSave, audit.ActionPayslipDelete}
	if strings.Join(actions, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected audit trail %v", actions)
	}
}

func TestSaveValidation(t *testing.T) {
	f := newFixture()
	rec, env := f.do(t, http.MethodPost, "/payslips", "u1", `{"month":"January","basic":-1}`, nil)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation error, got %d", rec.Code)
	}
	if len(f.service.items["u1"]) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestSaveRejectsAmountsBeyondStorage(t *testing.T) {
	f := newFixture()
	body := strings.Replace(payslipBody("July"), `"basic":50000`, `"basic":"5000000000000"`, 1)
	rec, env := f.do(t, http.MethodPost, "/payslips", "u1", body, nil)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "validation_error" {
		t.Fatalf("expected 400 validation_error, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.service.items["u1"]) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestSaveIdempotencyReplayAndConflict(t *testing.T) {
	f := newFixture()
	headers := map[string]string{"Idempotency-Key": "k-1"}

	first, firstEnv := f.do(t, http.MethodPost, "/payslips", "u1", payslipBody("March"), headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	second, secondEnv := f.do(t, http.MethodPost, "/payslips", "u1", payslipBody("March"), headers)
	if second.Code != http.StatusCreated || second.Header().Get("Idempotent-Replay") != "true" {
		t.Fatalf("expected replay, got %d", second.Code)
	}
	if !bytes.Equal(firstEnv.Data, secondEnv.Data) {
		t.Fatalf("expected identical replay:\n%s\n%s", firstEnv.Data, secondEnv.Data)
	}
	if len(f.service.items["u1"]) != 1 {
		t.Fatalf("expected a single stored payslip, got %d", len(f.service.items["u1"]))
	}

	conflict, env := f.do(t, http.MethodPost, "/payslips", "u1", payslipBody("April"), headers)
	if conflict.Code != http.StatusConflict || env.Error.Code != "idempotency_conflict" {
		t.Fatalf("expected 409, got %d", conflict.Code)
	}
}

func TestReportAndExport(t *testing.T) {
	f := newFixture()
	rec, env := f.do(t, http.MethodPost, "/payslips", "u1", payslipBody("May"), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var saved payslip.Payslip
	if err := json.Unmarshal(env.Data, &saved); err != nil {
		t.Fatalf("decode saved: %v", err)
	}

	rec, _ = f.do(t, http.MethodGet, "/payslips/"+saved.ID+"/report", "u1", "", nil)
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf, got %d", rec.Code)
	}
	rec, _ = f.do(t, http.MethodGet, "/payslips/unknown/report", "u1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec, _ = f.do(t, http.MethodGet, "/payslips/export", "u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer book.Close()
	rows, err := book.GetRows("Payslips")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "May" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestSummary(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/payslips", "u1", payslipBody("June"), nil)

	rec, env := f.do(t, http.MethodGet, "/payslips/summary", "u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summary payslip.Summary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Count != 1 || summary.Latest == nil || summary.Latest.Month != "June" || summary.AverageCTC != 96000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
