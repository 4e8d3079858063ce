package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-quiz/internal/content"
	"creator-quiz/internal/repository"
	"creator-quiz/internal/scoring"
	"creator-quiz/internal/service"
)

func setupQuizRouter(t *testing.T, limiter service.SubmissionRateLimiter, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := content.LoadFile("../../data/quiz.yaml")
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	store, err := repository.NewFileResponseLog(filepath.Join(t.TempDir(), "responses.jsonl"))
	if err != nil {
		t.Fatalf("open response log: %v", err)
	}
	svc := service.NewQuizService(
		scoring.NewClassifier(cat),
		store,
		limiter,
		service.NewReportTokenService(secret, time.Hour),
		zap.NewNop(),
	)
	return NewRouter(zap.NewNop(), NewQuizHandler(zap.NewNop(), svc))
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func neutralAnswers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 3
	}
	return out
}

type submitResponse struct {
	UserID         string `json:"user_id"`
	ReportToken    string `json:"report_token"`
	Classification struct {
		Primary   string `json:"primary"`
		Secondary string `json:"secondary"`
	} `json:"classification"`
	Report struct {
		Name    string `json:"name"`
		SubName string `json:"sub_name"`
	} `json:"report"`
}

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func TestQuizHandler_Health(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	rec := performRequest(r, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestQuizHandler_Questions(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	rec := performRequest(r, http.MethodGet, "/api/questions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var sheet struct {
		Scale     struct{ Min, Max int } `json:"scale"`
		Questions []struct {
			Index int    `json:"index"`
			Text  string `json:"text"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sheet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sheet.Questions) != 20 || sheet.Scale.Max != 5 {
		t.Fatalf("unexpected sheet %+v", sheet)
	}
}

func TestQuizHandler_StartReturnsSessionID(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	rec := performRequest(r, http.MethodPost, "/api/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.UserID == "" {
		t.Fatalf("expected user_id in body, got %s (err=%v)", rec.Body.String(), err)
	}
}

func TestQuizHandler_SubmitThenResultAndChart(t *testing.T) {
	r := setupQuizRouter(t, nil, "")

	rec := performRequest(r, http.MethodPost, "/api/submit", gin.H{"user_id": "u1", "answers": neutralAnswers(20)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sub submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.Classification.Primary != "educator" || sub.Classification.Secondary != "all_rounder" {
		t.Fatalf("unexpected classification %+v", sub.Classification)
	}
	if sub.Report.Name != "Educator Dolphin" || sub.Report.SubName != "all_rounder" {
		t.Fatalf("unexpected report %+v", sub.Report)
	}

	rec = performRequest(r, http.MethodGet, "/api/result/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for result, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/api/chart/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for chart, got %d", rec.Code)
	}
	var chart struct {
		Bars []struct {
			Dimension string  `json:"dimension"`
			Score     float64 `json:"score"`
		} `json:"bars"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(chart.Bars) != 5 || chart.Bars[0].Dimension != "creativity" || chart.Bars[0].Score != 5 {
		t.Fatalf("unexpected chart %+v", chart)
	}
}

func TestQuizHandler_SubmitBadRequests(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	cases := []struct {
		name string
		body any
	}{
		{name: "wrong length", body: gin.H{"user_id": "u1", "answers": neutralAnswers(19)}},
		{name: "missing user", body: gin.H{"answers": neutralAnswers(20)}},
		{name: "out of range", body: gin.H{"user_id": "u1", "answers": append(neutralAnswers(19), 9)}},
		{name: "not a list", body: gin.H{"user_id": "u1", "answers": "3,3,3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodPost, "/api/submit", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestQuizHandler_SubmitRateLimited(t *testing.T) {
	r := setupQuizRouter(t, denyAll{}, "")
	rec := performRequest(r, http.MethodPost, "/api/submit", gin.H{"user_id": "u1", "answers": neutralAnswers(20)})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestQuizHandler_UnknownUser(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	for _, path := range []string{"/api/result/nobody", "/api/chart/nobody", "/api/pdf/nobody"} {
		rec := performRequest(r, http.MethodGet, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", path, rec.Code)
		}
	}
}

func TestQuizHandler_PDFRequiresToken(t *testing.T) {
	r := setupQuizRouter(t, nil, "secret")

	rec := performRequest(r, http.MethodPost, "/api/submit", gin.H{"user_id": "0123456789abcdef", "answers": neutralAnswers(20)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var sub submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.ReportToken == "" {
		t.Fatalf("expected report token when secret is set")
	}

	rec = performRequest(r, http.MethodGet, "/api/pdf/0123456789abcdef", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/api/pdf/0123456789abcdef?token="+sub.ReportToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "creator_report_01234567.pdf") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF body")
	}
}

func TestWithCORS(t *testing.T) {
	r := setupQuizRouter(t, nil, "")
	h := WithCORS(r, []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for unknown origin, got %q", got)
	}
}

func TestQuizHandler_ResultDoesNotLeakReportToken(t *testing.T) {
	r := setupQuizRouter(t, nil, "secret")

	rec := performRequest(r, http.MethodPost, "/api/submit", gin.H{"user_id": "victim-123", "answers": neutralAnswers(20)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/api/result/victim-123", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for result, got %d", rec.Code)
	}
	var res submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ReportToken != "" {
		t.Fatalf("result must not carry a report token, got %d bytes", len(res.ReportToken))
	}
	if strings.Contains(rec.Body.String(), "report_token") {
		t.Fatalf("unexpected report_token field in %s", rec.Body.String())
	}

	rec = performRequest(r, http.MethodGet, "/api/pdf/victim-123?token="+res.ReportToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without the submit token, got %d", rec.Code)
	}
}
