/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/skip2/go-qrcode"

	"github.com/humaidq/labdesk/db"
)

// requestBaseURL returns scheme://host for the incoming request.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

// reportQRTarget is the report page link encoded in a report's QR code.
func reportQRTarget(baseURL string, report *db.LabReport) string {
	return baseURL + "/reports/" + report.ID.String()
}

func generateQRCodePNG(value string) ([]byte, error) {
	png, err := qrcode.Encode(value, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}

	return png, nil
}

// ReportQRCode serves a PNG QR code linking to a report.
func ReportQRCode(c flamego.Context) {
	report, err := db.GetLabReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		status, _ := reportErrorStatus(err)
		c.ResponseWriter().WriteHeader(status)

		return
	}

	png, err := generateQRCodePNG(reportQRTarget(requestBaseURL(c.Request().Request), report))
	if err != nil {
		logger.Error("Failed to render report QR code", "report_id", report.ID, "error", err)
		c.ResponseWriter().WriteHeader(http.StatusInternalServerError)

		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "image/png")
	c.ResponseWriter().WriteHeader(http.StatusOK)

	if _, err := c.ResponseWriter().Write(png); err != nil {
		logger.Warn("Failed to write QR code", "report_id", report.ID, "error", err)
	}
}
