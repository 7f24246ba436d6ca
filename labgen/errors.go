/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import "errors"

var (
	ErrEmptyTestID     = errors.New("test id is empty")
	ErrDuplicateTestID = errors.New("duplicate test id")
	ErrEmptyFieldName  = errors.New("field name is empty")
	ErrInvalidBound    = errors.New("reference bound is not a finite number")
)
