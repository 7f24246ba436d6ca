/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errAdminUsernameRequired = errors.New("admin username is required")
	errAdminPasswordRequired = errors.New("admin password is required")
	errInvalidRequestBody    = errors.New("invalid request body")
)
