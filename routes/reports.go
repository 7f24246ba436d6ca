/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	htmltemplate "html/template"
	"io"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdesk/db"
	"github.com/humaidq/labdesk/labgen"
	"github.com/humaidq/labdesk/utils"
)

// maxReportBodyBytes bounds JSON request bodies on the report API.
const maxReportBodyBytes = 64 << 10

// createReportRequest is the body of POST /api/reports.
type createReportRequest struct {
	PatientName  string `json:"patientName"`
	TestName     string `json:"testName"`
	Notes        string `json:"notes"`
	DocumentLink string `json:"documentLink"`
}

type documentRequest struct {
	DocumentLink string `json:"documentLink"`
}

func decodeJSONBody(c flamego.Context, v interface{}) error {
	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Request.Body, maxReportBodyBytes)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.Join(errInvalidRequestBody, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errInvalidRequestBody
	}

	return nil
}

// reportErrorStatus maps store errors to an HTTP status and client message.
func reportErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, db.ErrLabReportNotFound):
		return http.StatusNotFound, "report not found"
	case errors.Is(err, db.ErrPatientNameRequired):
		return http.StatusBadRequest, "patient name is required"
	case errors.Is(err, db.ErrTestNameRequired):
		return http.StatusBadRequest, "test name is required"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// createReport generates results for the request and stores them. The bool
// is false when the test is not in the catalog.
func createReport(c flamego.Context, gen *labgen.Generator, req createReportRequest) (*db.LabReport, bool, error) {
	patientName := strings.TrimSpace(req.PatientName)
	testName := strings.TrimSpace(req.TestName)

	if patientName == "" {
		return nil, true, db.ErrPatientNameRequired
	}

	if testName == "" {
		return nil, true, db.ErrTestNameRequired
	}

	results, ok := gen.Generate(testName)
	if !ok {
		return nil, false, nil
	}

	report, err := db.CreateLabReport(c.Request().Context(), db.NewLabReport{
		PatientName:  patientName,
		TestName:     testName,
		Results:      results,
		Notes:        req.Notes,
		DocumentLink: req.DocumentLink,
	})
	if err != nil {
		return nil, true, err
	}

	return report, true, nil
}

// ========== Report API ==========

// ListReportsAPI returns every stored report.
func ListReportsAPI(c flamego.Context) {
	reports, err := db.ListLabReports(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list lab reports", "error", err)
		writeJSONError(c, http.StatusInternalServerError, "failed to list reports")

		return
	}

	writeJSON(c, http.StatusOK, reports)
}

// CreateReportAPI generates and stores a report.
func CreateReportAPI(c flamego.Context, gen *labgen.Generator) {
	var req createReportRequest
	if err := decodeJSONBody(c, &req); err != nil {
		writeJSONError(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	report, known, err := createReport(c, gen, req)
	if !known {
		writeJSONError(c, http.StatusNotFound, errUnknownTest)
		return
	}

	if err != nil {
		status, message := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create lab report", "test", req.TestName, "error", err)
		}

		writeJSONError(c, status, message)

		return
	}

	writeJSON(c, http.StatusCreated, report)
}

// GetReportAPI returns a single report.
func GetReportAPI(c flamego.Context) {
	report, err := db.GetLabReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		status, message := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to load lab report", "report_id", c.Param("id"), "error", err)
		}

		writeJSONError(c, status, message)

		return
	}

	writeJSON(c, http.StatusOK, report)
}

// SetReportDocumentAPI attaches (or clears) the document link of a report.
func SetReportDocumentAPI(c flamego.Context) {
	var req documentRequest
	if err := decodeJSONBody(c, &req); err != nil {
		writeJSONError(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	link, err := db.SetLabReportDocument(c.Request().Context(), c.Param("id"), req.DocumentLink)
	if err != nil {
		status, message := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update report document", "report_id", c.Param("id"), "error", err)
		}

		writeJSONError(c, status, message)

		return
	}

	writeJSON(c, http.StatusOK, map[string]*string{"documentLink": link})
}

// DeleteReportAPI removes a report.
func DeleteReportAPI(c flamego.Context) {
	if err := db.DeleteLabReport(c.Request().Context(), c.Param("id")); err != nil {
		status, message := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete lab report", "report_id", c.Param("id"), "error", err)
		}

		writeJSONError(c, status, message)

		return
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}

// ========== Report Pages ==========

// ReportsPage lists stored reports with a form to generate a new one.
func ReportsPage(c flamego.Context, t template.Template, data template.Data, gen *labgen.Generator) {
	reports, err := db.ListLabReports(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list lab reports", "error", err)
		data["Error"] = "Failed to load reports"
	}

	data["Reports"] = reports
	data["Tests"] = gen.Catalog().Definitions()
	data["Title"] = "Lab Reports"

	t.HTML(http.StatusOK, "reports")
}

// CreateReport handles the new-report form.
func CreateReport(c flamego.Context, s session.Session, gen *labgen.Generator) {
	req := createReportRequest{
		PatientName:  c.Request().FormValue("patient_name"),
		TestName:     c.Request().FormValue("test_name"),
		Notes:        c.Request().FormValue("notes"),
		DocumentLink: c.Request().FormValue("document_link"),
	}

	report, known, err := createReport(c, gen, req)
	if !known {
		SetErrorFlash(s, "Unknown test: "+req.TestName)
		c.Redirect("/reports", http.StatusSeeOther)

		return
	}

	if err != nil {
		status, message := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create lab report", "test", req.TestName, "error", err)
			message = "Failed to create report"
		}

		SetErrorFlash(s, message)
		c.Redirect("/reports", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Report created")
	c.Redirect("/reports/"+report.ID.String(), http.StatusSeeOther)
}

// ViewReport renders a stored report with its result chart.
func ViewReport(c flamego.Context, t template.Template, data template.Data, gen *labgen.Generator) {
	report, err := db.GetLabReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		status, _ := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to load lab report", "report_id", c.Param("id"), "error", err)
		}

		c.ResponseWriter().WriteHeader(status)

		return
	}

	chart, err := renderReportChart(report, gen.Catalog())
	if err != nil {
		logger.Warn("Failed to render report chart", "report_id", report.ID, "error", err)
	}

	data["Report"] = report
	data["Chart"] = htmltemplate.HTML(chart) //nolint:gosec // go-echarts output
	data["Title"] = report.DisplayName

	if report.DocumentLink != nil {
		data["DocumentURL"] = utils.EnsureReportPath(*report.DocumentLink)
	}

	t.HTML(http.StatusOK, "report")
}

// DeleteReport handles the delete form on the report page.
func DeleteReport(c flamego.Context, s session.Session) {
	if err := db.DeleteLabReport(c.Request().Context(), c.Param("id")); err != nil {
		_, message := reportErrorStatus(err)
		logger.Warn("Failed to delete lab report", "report_id", c.Param("id"), "error", err)
		SetErrorFlash(s, message)
		c.Redirect("/reports", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Report deleted")
	c.Redirect("/reports", http.StatusSeeOther)
}
