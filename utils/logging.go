/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import "github.com/humaidq/labdesk/logging"

var logger = logging.Logger(logging.SourceApp)
