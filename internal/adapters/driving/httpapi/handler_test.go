package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

type mockAuditService struct {
	result *domain.AuditResult
	err    error
	got    domain.AuditRequest
	calls  int
}

func (m *mockAuditService) RunAudit(_ context.Context, req domain.AuditRequest) (*domain.AuditResult, error) {
	m.calls++
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	if req.Empty() {
		return nil, domain.ErrNoReport
	}
	return m.result, nil
}

func sampleResult() *domain.AuditResult {
	return &domain.AuditResult{
		ID:          "run-1",
		ProcessLogs: []string{"1. Extracting text from the report..."},
		EvaluationTable: []domain.EvaluationRecord{
			{Classification: "Governance", Item: "Board oversight", Score: "4"},
		},
		RadarChartData: domain.ChartData{Labels: []string{"Governance"}, Data: []float64{4}},
	}
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body detailResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Detail
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("report_file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAudit_TextForm(t *testing.T) {
	svc := &mockAuditService{result: sampleResult()}
	h := New(svc, nil).Routes()

	rec := postForm(h, url.Values{"report_text": {"Our board oversees nature risks."}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Our board oversees nature risks.", svc.got.ReportText)
	assert.False(t, svc.got.HasFile())

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "run-1", body["id"])
	assert.Len(t, body["evaluation_table"], 1)
}

func TestAudit_MultipartFile(t *testing.T) {
	svc := &mockAuditService{result: sampleResult()}
	h := New(svc, nil).Routes()

	body, contentType := multipartBody(t, map[string]string{"report_text": "ignored"}, "report.txt", []byte("file text"))
	req := httptest.NewRequest(http.MethodPost, "/audit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "report.txt", svc.got.FileName)
	assert.Equal(t, []byte("file text"), svc.got.FileContent)
	assert.Equal(t, "ignored", svc.got.ReportText)
}

func TestAudit_NoInput(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"no fields", url.Values{}},
		{"empty text", url.Values{"report_text": {""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuditService{result: sampleResult()}
			rec := postForm(New(svc, nil).Routes(), tt.values)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "No report text or file provided.", decodeDetail(t, rec))
			assert.Zero(t, svc.calls)
		})
	}
}

func TestAudit_ServiceUnavailable(t *testing.T) {
	rec := postForm(New(nil, nil).Routes(), url.Values{"report_text": {"x"}})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, decodeDetail(t, rec))
}

func TestAudit_InternalError(t *testing.T) {
	svc := &mockAuditService{err: errors.New("boom")}
	rec := postForm(New(svc, nil).Routes(), url.Values{"report_text": {"x"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An internal error occurred: boom", decodeDetail(t, rec))
}

func TestAudit_UnencodableResult(t *testing.T) {
	result := sampleResult()
	result.Synthesis.AverageScores = domain.CategoryAverages{{Classification: "Governance", Average: math.NaN()}}
	rec := postForm(New(&mockAuditService{result: result}, nil).Routes(), url.Values{"report_text": {"x"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "An internal error occurred")
}

func TestAudit_CategoryNamesNotEscaped(t *testing.T) {
	result := sampleResult()
	result.Synthesis.AverageScores = domain.CategoryAverages{{Classification: "Metrics & Targets", Average: 3}}
	rec := postForm(New(&mockAuditService{result: result}, nil).Routes(), url.Values{"report_text": {"x"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Metrics & Targets":3`)
}

func TestAudit_TooLarge(t *testing.T) {
	svc := &mockAuditService{result: sampleResult()}
	h := New(svc, nil).Routes()

	big := bytes.Repeat([]byte("a"), MaxUploadSize+1)
	body, contentType := multipartBody(t, nil, "big.txt", big)
	req := httptest.NewRequest(http.MethodPost, "/audit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	New(nil, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Disclosure Auditor")
	assert.Contains(t, rec.Body.String(), "report_file")
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	New(nil, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "auditor_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	rec := httptest.NewRecorder()
	New(nil, reg).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "auditor_test_total 1")
}

func TestMetrics_DisabledWithoutGatherer(t *testing.T) {
	rec := httptest.NewRecorder()
	New(nil, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer("127.0.0.1:0", New(nil, nil).Routes())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv) }()
	cancel()

	assert.NoError(t, <-done)
}
