/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package static

import "embed"

// Static contains the landing page and stylesheet.
//
//go:embed *.html *.css
var Static embed.FS
