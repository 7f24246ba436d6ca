/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import "strconv"

// FieldKind identifies how a panel field produces its result.
type FieldKind int

const (
	// KindUnresolvable fields have neither expected text nor numeric bounds.
	KindUnresolvable FieldKind = iota
	// KindQualitative fields report a fixed expected text.
	KindQualitative
	// KindQuantitative fields are sampled around a numeric reference range.
	KindQuantitative
)

// String returns the lowercase kind name used in API output.
func (k FieldKind) String() string {
	switch k {
	case KindQualitative:
		return "qualitative"
	case KindQuantitative:
		return "quantitative"
	default:
		return "unresolvable"
	}
}

// NotAvailable is reported for fields that cannot be resolved.
const NotAvailable = "N/A"

// FieldSpec is a resolved panel field. Construct it with Qualitative,
// Quantitative or Unresolvable so the kind always matches the populated data.
type FieldSpec struct {
	Name string
	Unit string

	kind     FieldKind
	expected string
	refLow   float64
	refHigh  float64
}

// Qualitative returns a field whose result is always the expected text.
func Qualitative(name, unit, expected string) FieldSpec {
	return FieldSpec{Name: name, Unit: unit, kind: KindQualitative, expected: expected}
}

// Quantitative returns a field sampled around [low, high]. The bounds are kept
// as given, including inverted ranges.
func Quantitative(name, unit string, low, high float64) FieldSpec {
	return FieldSpec{Name: name, Unit: unit, kind: KindQuantitative, refLow: low, refHigh: high}
}

// Unresolvable returns a placeholder field that always reports N/A.
func Unresolvable(name, unit string) FieldSpec {
	return FieldSpec{Name: name, Unit: unit, kind: KindUnresolvable}
}

// Kind returns the field kind.
func (f FieldSpec) Kind() FieldKind {
	return f.kind
}

// ExpectedText returns the fixed text of a qualitative field.
func (f FieldSpec) ExpectedText() (string, bool) {
	return f.expected, f.kind == KindQualitative
}

// Bounds returns the reference bounds of a quantitative field.
func (f FieldSpec) Bounds() (low, high float64, ok bool) {
	return f.refLow, f.refHigh, f.kind == KindQuantitative
}

// Reference renders the reference range shown next to a result.
func (f FieldSpec) Reference() string {
	switch f.kind {
	case KindQualitative:
		return f.expected
	case KindQuantitative:
		return formatBound(f.refLow) + " - " + formatBound(f.refHigh)
	default:
		return NotAvailable
	}
}

// formatBound renders a bound in its shortest form, so 4.0 becomes "4".
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FieldDefinition is the authoring form of a field. The kind is decided by
// which reference attributes are present when the catalog is built.
type FieldDefinition struct {
	Name    string
	Unit    string
	RefText *string
	RefLow  *float64
	RefHigh *float64
}

// Resolve converts the definition into a FieldSpec. Non-empty reference text
// takes precedence over numeric bounds, and both bounds are needed for a
// quantitative field.
func (d FieldDefinition) Resolve() FieldSpec {
	if d.RefText != nil && *d.RefText != "" {
		return Qualitative(d.Name, d.Unit, *d.RefText)
	}

	if d.RefLow != nil && d.RefHigh != nil {
		return Quantitative(d.Name, d.Unit, *d.RefLow, *d.RefHigh)
	}

	return Unresolvable(d.Name, d.Unit)
}

// num is a helper to create pointers to float64 literals
func num(f float64) *float64 {
	return &f
}

// text is a helper to create pointers to string literals
func text(s string) *string {
	return &s
}
