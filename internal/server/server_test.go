package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/eventdesk/internal/observability"
	reportdomain "github.com/smallbiznis/eventdesk/internal/report/domain"
	"go.uber.org/zap"
)

type reportCall struct {
	method string
	userID string
	name   reportdomain.Name
	opts   reportdomain.Options
}

type fakeReportService struct {
	mu    sync.Mutex
	calls []reportCall
	err   error
}

func (f *fakeReportService) record(call reportCall) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeReportService) snapshot() []reportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reportCall(nil), f.calls...)
}

func (f *fakeReportService) GetDashboard(ctx context.Context, userID string, opts reportdomain.Options) (reportdomain.ReportResult, error) {
	f.record(reportCall{method: "dashboard", userID: userID, opts: opts})
	if f.err != nil {
		return reportdomain.ReportResult{}, f.err
	}
	return reportdomain.ReportResult{
		Name:         reportdomain.Dashboard,
		GeneratedAt:  time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC),
		Cached:       true,
		SourceCounts: map[string]int{"events": 3},
		Payload:      json.RawMessage(`{"active_clients":2}`),
	}, nil
}

func (f *fakeReportService) GetReport(ctx context.Context, userID string, name reportdomain.Name, opts reportdomain.Options) (reportdomain.ReportResult, error) {
	f.record(reportCall{method: "report", userID: userID, name: name, opts: opts})
	if f.err != nil {
		return reportdomain.ReportResult{}, f.err
	}
	return reportdomain.ReportResult{
		Name:         name,
		SourceCounts: map[string]int{},
		Payload:      json.RawMessage(`{"summary":{"total":"10"}}`),
	}, nil
}

func (f *fakeReportService) GenerateAllReports(ctx context.Context, userID string, opts reportdomain.Options) error {
	f.record(reportCall{method: "generate", userID: userID, opts: opts})
	return f.err
}

func newTestServer(t *testing.T, reports reportdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := NewEngine(observability.Config{Environment: "test", LogLevel: "info"}, nil)
	return NewServer(ServerParams{
		Gin:     engine,
		Reports: reports,
		Log:     zap.NewNop(),
	})
}

func do(srv *Server, method, path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	resp := httptest.NewRecorder()
	srv.Engine().ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, resp.Body.String())
	}
	return body.Error
}

func TestMissingUserHeaderReturns401(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	resp := do(srv, http.MethodGet, "/api/dashboard", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	payload := decodeError(t, resp)
	if payload.Type != "unauthorized" {
		t.Fatalf("expected unauthorized, got %q", payload.Type)
	}
	if payload.RequestID == "" || payload.RequestID != resp.Header().Get("X-Request-Id") {
		t.Fatalf("expected request id %q in body, got %q", resp.Header().Get("X-Request-Id"), payload.RequestID)
	}
	if len(fake.snapshot()) != 0 {
		t.Fatal("expected report service not to be called")
	}
}

func TestGetDashboardPassesUserAndOptions(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	resp := do(srv, http.MethodGet, "/api/dashboard?force_refresh=true", "u1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data struct {
			Name         string          `json:"name"`
			Cached       bool            `json:"cached"`
			SourceCounts map[string]int  `json:"source_counts"`
			Payload      json.RawMessage `json:"payload"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Name != "dashboard" || !body.Data.Cached {
		t.Fatalf("unexpected result %+v", body.Data)
	}
	if string(body.Data.Payload) != `{"active_clients":2}` {
		t.Fatalf("payload not passed through: %s", body.Data.Payload)
	}
	if body.Data.SourceCounts["events"] != 3 {
		t.Fatalf("expected source counts, got %v", body.Data.SourceCounts)
	}

	calls := fake.snapshot()
	if len(calls) != 1 || calls[0].userID != "u1" || !calls[0].opts.ForceRefresh {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestInvalidForceRefreshIsRejected(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	resp := do(srv, http.MethodGet, "/api/reports/channels?force_refresh=maybe", "u1")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	payload := decodeError(t, resp)
	if len(payload.Errors) != 1 || payload.Errors[0].Field != "force_refresh" {
		t.Fatalf("unexpected validation errors %+v", payload.Errors)
	}
}

func TestGetReportRoutesByName(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	resp := do(srv, http.MethodGet, "/api/reports/Cash_Flow", "u1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	calls := fake.snapshot()
	if len(calls) != 1 || calls[0].name != reportdomain.ReportCashFlow || calls[0].opts.ForceRefresh {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestUnknownReportReturns404(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	for _, name := range []string{"profit", "dashboard"} {
		resp := do(srv, http.MethodGet, "/api/reports/"+name, "u1")
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", name, resp.Code)
		}
		if payload := decodeError(t, resp); payload.Type != "unknown_report" {
			t.Fatalf("%s: expected unknown_report, got %q", name, payload.Type)
		}
	}
	if len(fake.snapshot()) != 0 {
		t.Fatal("expected report service not to be called")
	}
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: payments: %w", reportdomain.ErrDatasetUnavailable, context.DeadlineExceeded), http.StatusServiceUnavailable, "service_unavailable"},
		{reportdomain.ErrUserRequired, http.StatusUnauthorized, "unauthorized"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		srv := newTestServer(t, &fakeReportService{err: tc.err})
		resp := do(srv, http.MethodGet, "/api/dashboard", "u1")
		if resp.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, resp.Code)
		}
		if payload := decodeError(t, resp); payload.Type != tc.kind {
			t.Fatalf("%v: expected %s, got %s", tc.err, tc.kind, payload.Type)
		}
	}
}

func TestListReports(t *testing.T) {
	srv := newTestServer(t, &fakeReportService{})

	resp := do(srv, http.MethodGet, "/api/reports", "u1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Data []reportListItem `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) != len(reportdomain.Reports()) {
		t.Fatalf("expected %d reports, got %d", len(reportdomain.Reports()), len(body.Data))
	}
	if body.Data[0].Name != "receivables" || body.Data[0].Path != "/api/reports/receivables" {
		t.Fatalf("unexpected first item %+v", body.Data[0])
	}
}

func TestGenerateReportsRunsInBackground(t *testing.T) {
	fake := &fakeReportService{}
	srv := newTestServer(t, fake)

	resp := do(srv, http.MethodPost, "/api/reports/generate?force_refresh=1", "u1")
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", resp.Code)
	}

	srv.wait()
	calls := fake.snapshot()
	if len(calls) != 1 || calls[0].method != "generate" || calls[0].userID != "u1" || !calls[0].opts.ForceRefresh {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestHealthAndFallback(t *testing.T) {
	srv := newTestServer(t, &fakeReportService{})

	if resp := do(srv, http.MethodGet, "/health", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}
	resp := do(srv, http.MethodGet, "/nope", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if payload := decodeError(t, resp); payload.Type != "not_found" {
		t.Fatalf("expected not_found, got %q", payload.Type)
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, code := classifyErrorForLog(reportdomain.ErrDatasetUnavailable)
	if kind != "server" || code != "service_unavailable" {
		t.Fatalf("unexpected classification %s/%s", kind, code)
	}
	kind, code = classifyErrorForLog(newValidationError("force_refresh", "invalid_force_refresh", "bad"))
	if kind != "client" || code != "invalid_force_refresh" {
		t.Fatalf("unexpected classification %s/%s", kind, code)
	}
}
