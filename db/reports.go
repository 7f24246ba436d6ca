/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/labdesk/labgen"
	"github.com/humaidq/labdesk/utils"
)

// LabReport is a stored report with its generated results.
type LabReport struct {
	ID           uuid.UUID                 `json:"id"`
	PatientName  string                    `json:"patientName"`
	TestName     string                    `json:"testName"`
	DisplayName  string                    `json:"displayName"`
	Results      labgen.GeneratedResultSet `json:"results"`
	Notes        *string                   `json:"notes,omitempty"`
	DocumentLink *string                   `json:"documentLink,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// LabReportSummary is the list view of a stored report.
type LabReportSummary struct {
	ID           uuid.UUID `json:"id"`
	PatientName  string    `json:"patientName"`
	TestName     string    `json:"testName"`
	DisplayName  string    `json:"displayName"`
	DocumentLink *string   `json:"documentLink,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewLabReport holds the input for CreateLabReport.
type NewLabReport struct {
	PatientName  string
	TestName     string
	Results      *labgen.GeneratedResultSet
	Notes        string
	DocumentLink string
}

// Validate trims the input and checks required fields.
func (n *NewLabReport) Validate() error {
	n.PatientName = strings.TrimSpace(n.PatientName)
	n.TestName = strings.TrimSpace(n.TestName)

	switch {
	case n.PatientName == "":
		return ErrPatientNameRequired
	case n.TestName == "":
		return ErrTestNameRequired
	case n.Results == nil:
		return ErrResultSetRequired
	}

	return nil
}

// optionalText returns nil for blank values so they are stored as NULL.
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

// CreateLabReport stores a generated report. Notes are reduced to plain text
// and the document link is normalized under /reports/.
func CreateLabReport(ctx context.Context, input NewLabReport) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	results, err := json.Marshal(input.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}

	notes := optionalText(utils.PlainText(input.Notes))
	link := optionalText(utils.NormalizeDocumentLink(strings.TrimSpace(input.DocumentLink)))

	query := `
		INSERT INTO lab_reports (patient_name, test_name, display_name, results, notes, document_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	report := LabReport{
		PatientName:  input.PatientName,
		TestName:     input.TestName,
		DisplayName:  input.Results.DisplayName,
		Results:      *input.Results,
		Notes:        notes,
		DocumentLink: link,
	}

	err = pool.QueryRow(ctx, query,
		report.PatientName, report.TestName, report.DisplayName, results, notes, link,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create lab report: %w", err)
	}

	logger.Info("Created lab report", "report_id", report.ID, "test", report.TestName)

	return &report, nil
}

// GetLabReport returns a single report by ID.
func GetLabReport(ctx context.Context, id string) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLabReportNotFound
	}

	query := `
		SELECT id, patient_name, test_name, display_name, results, notes, document_link, created_at, updated_at
		FROM lab_reports
		WHERE id = $1
	`

	var (
		report  LabReport
		results []byte
	)

	err = pool.QueryRow(ctx, query, reportID).Scan(
		&report.ID, &report.PatientName, &report.TestName, &report.DisplayName,
		&results, &report.Notes, &report.DocumentLink,
		&report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabReportNotFound
		}

		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}

	if err := json.Unmarshal(results, &report.Results); err != nil {
		return nil, fmt.Errorf("failed to decode lab report results: %w", err)
	}

	return &report, nil
}

// ListLabReports returns all reports, newest first.
func ListLabReports(ctx context.Context) ([]LabReportSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, patient_name, test_name, display_name, document_link, created_at
		FROM lab_reports
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	defer rows.Close()

	reports := []LabReportSummary{}

	for rows.Next() {
		var r LabReportSummary
		if err := rows.Scan(&r.ID, &r.PatientName, &r.TestName, &r.DisplayName, &r.DocumentLink, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lab report: %w", err)
		}

		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab reports: %w", err)
	}

	return reports, nil
}

// SetLabReportDocument attaches a document link to a report. An empty link
// clears it.
func SetLabReportDocument(ctx context.Context, id, link string) (*string, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLabReportNotFound
	}

	normalized := optionalText(utils.NormalizeDocumentLink(strings.TrimSpace(link)))

	tag, err := pool.Exec(ctx,
		`UPDATE lab_reports SET document_link = $1, updated_at = now() WHERE id = $2`,
		normalized, reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update lab report document: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrLabReportNotFound
	}

	return normalized, nil
}

// DeleteLabReport removes a report.
func DeleteLabReport(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	reportID, err := uuid.Parse(id)
	if err != nil {
		return ErrLabReportNotFound
	}

	tag, err := pool.Exec(ctx, `DELETE FROM lab_reports WHERE id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete lab report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrLabReportNotFound
	}

	logger.Info("Deleted lab report", "report_id", reportID)

	return nil
}
