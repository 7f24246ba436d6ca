/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"regexp"
	"strings"
)

// ReportPathPrefix is the public path prefix of stored report documents.
const ReportPathPrefix = "/reports/"

var reportSegmentRegex = regexp.MustCompile(`/?reports/?`)

// NormalizeDocumentLink rewrites a stored document link so it has exactly one
// /reports/ prefix. Every "reports/" segment in the input is dropped first.
func NormalizeDocumentLink(link string) string {
	if link == "" {
		return link
	}

	clean := reportSegmentRegex.ReplaceAllString(link, "")

	return ReportPathPrefix + clean
}

// EnsureReportPath prefixes link with /reports/ unless it already has it.
func EnsureReportPath(link string) string {
	if link == "" {
		return link
	}

	if strings.HasPrefix(link, ReportPathPrefix) {
		return link
	}

	return ReportPathPrefix + strings.TrimLeft(link, "/")
}
