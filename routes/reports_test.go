// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/labdesk/db"
	"github.com/humaidq/labdesk/labgen"
)

func newReportsAPITestApp() *flamego.Flame {
	f, _ := newTestApp(newTestSession(), newTestGenerator())
	f.Post("/api/reports", CreateReportAPI)
	f.Get("/api/reports/{id}", GetReportAPI)
	f.Post("/api/reports/{id}/document", SetReportDocumentAPI)

	return f
}

func performJSONPOST(f *flamego.Flame, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return serve(f, req)
}

func TestCreateReportAPIValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       `{"patientName":`,
			wantStatus: http.StatusBadRequest,
			wantError:  errInvalidRequestBody.Error(),
		},
		{
			name:       "unknown field",
			body:       `{"patientName":"Jane","testName":"CBC","extra":true}`,
			wantStatus: http.StatusBadRequest,
			wantError:  errInvalidRequestBody.Error(),
		},
		{
			name:       "trailing data",
			body:       `{"patientName":"Jane","testName":"CBC"} {}`,
			wantStatus: http.StatusBadRequest,
			wantError:  errInvalidRequestBody.Error(),
		},
		{
			name:       "missing patient name",
			body:       `{"patientName":"  ","testName":"CBC"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "patient name is required",
		},
		{
			name:       "missing test name",
			body:       `{"patientName":"Jane"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "test name is required",
		},
		{
			name:       "unknown test",
			body:       `{"patientName":"Jane","testName":"Nonexistent Panel"}`,
			wantStatus: http.StatusNotFound,
			wantError:  errUnknownTest,
		},
		{
			name:       "store unavailable",
			body:       `{"patientName":"Jane","testName":"CBC"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := performJSONPOST(newReportsAPITestApp(), "/api/reports", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}

			var body map[string]string
			decodeJSON(t, rec, &body)

			if body["error"] != tt.wantError {
				t.Fatalf("expected error %q, got %#v", tt.wantError, body)
			}
		})
	}
}

func TestDecodeJSONBodyReadsRequestBody(t *testing.T) {
	t.Parallel()

	var (
		got    createReportRequest
		gotErr error
	)

	f := flamego.New()
	f.Post("/", func(c flamego.Context) {
		gotErr = decodeJSONBody(c, &got)
	})

	performJSONPOST(f, "/", `{"patientName":"Jane","testName":"CBC","notes":"fasting"}`)

	if gotErr != nil {
		t.Fatalf("decodeJSONBody returned error: %v", gotErr)
	}

	want := createReportRequest{PatientName: "Jane", TestName: "CBC", Notes: "fasting"}
	if got != want {
		t.Fatalf("decodeJSONBody() = %#v, want %#v", got, want)
	}

	oversized := `{"notes":"` + strings.Repeat("x", maxReportBodyBytes) + `"}`
	performJSONPOST(f, "/", oversized)

	if !errors.Is(gotErr, errInvalidRequestBody) {
		t.Fatalf("expected oversized body to be rejected, got %v", gotErr)
	}
}

func TestSetReportDocumentAPIRejectsBadBody(t *testing.T) {
	t.Parallel()

	rec := performJSONPOST(newReportsAPITestApp(), "/api/reports/"+uuid.NewString()+"/document", `[]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestReportErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: db.ErrLabReportNotFound, wantStatus: http.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", db.ErrLabReportNotFound), wantStatus: http.StatusNotFound},
		{err: db.ErrPatientNameRequired, wantStatus: http.StatusBadRequest},
		{err: db.ErrTestNameRequired, wantStatus: http.StatusBadRequest},
		{err: db.ErrDatabaseConnectionNotInitialized, wantStatus: http.StatusInternalServerError},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got, _ := reportErrorStatus(tt.err); got != tt.wantStatus {
			t.Fatalf("reportErrorStatus(%v) = %d, want %d", tt.err, got, tt.wantStatus)
		}
	}
}

func TestCreateReportFormUnknownTest(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f, _ := newTestApp(s, newTestGenerator())
	f.Post("/reports/new", CreateReport)

	req := httptest.NewRequest(http.MethodPost, "/reports/new",
		strings.NewReader("patient_name=Jane&test_name=cbc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(f, req)
	assertRedirect(t, rec, http.StatusSeeOther, "/reports")

	msg, ok := s.flash.(FlashMessage)
	if !ok || msg.Type != FlashError || msg.Message != "Unknown test: cbc" {
		t.Fatalf("unexpected flash: %#v", s.flash)
	}
}

func TestRangePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, low, high float64
		want         float64
		ok           bool
	}{
		{v: 70, low: 70, high: 100, want: 0, ok: true},
		{v: 100, low: 70, high: 100, want: 100, ok: true},
		{v: 85, low: 70, high: 100, want: 50, ok: true},
		{v: 67, low: 70, high: 100, want: -10, ok: true},
		{v: 5, low: 5, high: 5, ok: false},
	}

	for _, tt := range tests {
		got, ok := rangePosition(tt.v, tt.low, tt.high)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("rangePosition(%v, %v, %v) = %v, %v; want %v, %v",
				tt.v, tt.low, tt.high, got, ok, tt.want, tt.ok)
		}
	}
}

func testReport(t *testing.T, testID string) *db.LabReport {
	t.Helper()

	results, ok := newTestGenerator().Generate(testID)
	if !ok {
		t.Fatalf("expected %q to be in the catalog", testID)
	}

	return &db.LabReport{
		ID:          uuid.New(),
		PatientName: "Jane Doe",
		TestName:    testID,
		DisplayName: results.DisplayName,
		Results:     *results,
	}
}

func TestRenderReportChart(t *testing.T) {
	t.Parallel()

	catalog := labgen.DefaultCatalog()

	html, err := renderReportChart(testReport(t, "CBC"), catalog)
	if err != nil {
		t.Fatalf("renderReportChart returned error: %v", err)
	}

	for _, want := range []string{"Hemoglobin", "Platelets"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected chart to mention %q", want)
		}
	}

	html, err = renderReportChart(testReport(t, "Urinalysis"), catalog)
	if err != nil {
		t.Fatalf("renderReportChart returned error: %v", err)
	}

	if !strings.Contains(html, "pH") {
		t.Fatalf("expected urinalysis chart to include pH")
	}

	report := testReport(t, "CBC")
	report.TestName = "Retired Panel"

	html, err = renderReportChart(report, catalog)
	if err != nil || html != "" {
		t.Fatalf("expected empty chart for unknown panel, got %q, %v", html, err)
	}
}

func TestRequestBaseURL(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://lab.example.com/reports", nil)
	if got := requestBaseURL(req); got != "http://lab.example.com" {
		t.Fatalf("unexpected base url: %q", got)
	}

	req.Header.Set("X-Forwarded-Proto", "HTTPS")
	if got := requestBaseURL(req); got != "https://lab.example.com" {
		t.Fatalf("unexpected forwarded base url: %q", got)
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "http://lab.example.com/reports", nil)
	tlsReq.TLS = &tls.ConnectionState{}

	if got := requestBaseURL(tlsReq); got != "https://lab.example.com" {
		t.Fatalf("unexpected tls base url: %q", got)
	}
}

func TestReportQRTarget(t *testing.T) {
	t.Parallel()

	report := testReport(t, "Thyroid Panel")
	want := "https://lab.example.com/reports/" + report.ID.String()

	if got := reportQRTarget("https://lab.example.com", report); got != want {
		t.Fatalf("reportQRTarget() = %q, want %q", got, want)
	}

	link := "/reports/scan-42.pdf"
	report.DocumentLink = &link

	if got := reportQRTarget("https://lab.example.com", report); got != want {
		t.Fatalf("expected the report page regardless of document, got %q", got)
	}
}

func TestGenerateQRCodePNG(t *testing.T) {
	t.Parallel()

	png, err := generateQRCodePNG("https://lab.example.com/reports/1")
	if err != nil {
		t.Fatalf("generateQRCodePNG returned error: %v", err)
	}

	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected PNG signature")
	}
}
