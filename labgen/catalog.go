/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import (
	"fmt"
	"math"
	"slices"
)

// TestDefinition is a resolved lab panel.
type TestDefinition struct {
	ID          string
	DisplayName string
	Fields      []FieldSpec
}

// PanelDefinition is the authoring form of a panel.
type PanelDefinition struct {
	ID          string
	DisplayName string
	Fields      []FieldDefinition
}

// Catalog is an immutable set of panels keyed by test ID. It is safe for
// concurrent use.
type Catalog struct {
	order []string
	tests map[string]TestDefinition
}

// NewCatalog resolves the given panel definitions into a catalog. Panel order
// is preserved for listing.
func NewCatalog(defs []PanelDefinition) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(defs)),
		tests: make(map[string]TestDefinition, len(defs)),
	}

	for _, def := range defs {
		if def.ID == "" {
			return nil, ErrEmptyTestID
		}

		if _, exists := c.tests[def.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTestID, def.ID)
		}

		fields := make([]FieldSpec, 0, len(def.Fields))
		for i, fd := range def.Fields {
			if fd.Name == "" {
				return nil, fmt.Errorf("%w: panel %q field %d", ErrEmptyFieldName, def.ID, i)
			}

			if !finiteBound(fd.RefLow) || !finiteBound(fd.RefHigh) {
				return nil, fmt.Errorf("%w: panel %q field %q", ErrInvalidBound, def.ID, fd.Name)
			}

			field := fd.Resolve()
			if field.Kind() == KindUnresolvable {
				logger.Warn("Field has no reference range", "test", def.ID, "field", fd.Name)
			}

			fields = append(fields, field)
		}

		c.order = append(c.order, def.ID)
		c.tests[def.ID] = TestDefinition{
			ID:          def.ID,
			DisplayName: def.DisplayName,
			Fields:      fields,
		}
	}

	return c, nil
}

func finiteBound(v *float64) bool {
	return v == nil || (!math.IsNaN(*v) && !math.IsInf(*v, 0))
}

// Lookup returns the panel with the exact (case-sensitive) test ID.
func (c *Catalog) Lookup(testID string) (TestDefinition, bool) {
	def, ok := c.tests[testID]
	if !ok {
		return TestDefinition{}, false
	}

	def.Fields = slices.Clone(def.Fields)

	return def, true
}

// Definitions returns every panel in declaration order.
func (c *Catalog) Definitions() []TestDefinition {
	defs := make([]TestDefinition, 0, len(c.order))
	for _, id := range c.order {
		def, _ := c.Lookup(id)
		defs = append(defs, def)
	}

	return defs
}

// IDs returns the test IDs in declaration order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Len returns the number of panels.
func (c *Catalog) Len() int {
	return len(c.order)
}
