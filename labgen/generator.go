/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a generated result: either a sampled number or fixed text.
type Value struct {
	number  float64
	text    string
	numeric bool
}

// NumberValue returns a numeric Value.
func NumberValue(v float64) Value {
	return Value{number: v, numeric: true}
}

// TextValue returns a textual Value.
func TextValue(s string) Value {
	return Value{text: s}
}

// Float64 returns the number and whether the value is numeric.
func (v Value) Float64() (float64, bool) {
	return v.number, v.numeric
}

// IsNumeric reports whether the value was sampled.
func (v Value) IsNumeric() bool {
	return v.numeric
}

// String renders the value for display.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}

	return v.text
}

// MarshalJSON encodes numeric values as JSON numbers and text as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.number)
	}

	return json.Marshal(v.text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string. A JSON null
// leaves v unchanged.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*v = TextValue(s)

	return nil
}

// GeneratedField is one fabricated result line.
type GeneratedField struct {
	Name      string `json:"name"`
	Value     Value  `json:"value"`
	Unit      string `json:"unit"`
	Reference string `json:"reference"`
}

// GeneratedResultSet is a fabricated result for a whole panel.
type GeneratedResultSet struct {
	DisplayName string           `json:"displayName"`
	Fields      []GeneratedField `json:"fields"`
}

// Generator fabricates result sets for the panels in a catalog.
type Generator struct {
	catalog *Catalog
	sampler *Sampler
}

// NewGenerator returns a generator over catalog. A nil sampler uses the
// default random source.
func NewGenerator(catalog *Catalog, sampler *Sampler) *Generator {
	if sampler == nil {
		sampler = NewSampler(nil)
	}

	return &Generator{catalog: catalog, sampler: sampler}
}

// Catalog returns the catalog backing the generator.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Lookup returns the panel for testID.
func (g *Generator) Lookup(testID string) (TestDefinition, bool) {
	return g.catalog.Lookup(testID)
}

// Generate fabricates a result set for testID. It returns false when the
// catalog has no such test.
func (g *Generator) Generate(testID string) (*GeneratedResultSet, bool) {
	def, ok := g.catalog.Lookup(testID)
	if !ok {
		return nil, false
	}

	fields := make([]GeneratedField, 0, len(def.Fields))
	for _, f := range def.Fields {
		fields = append(fields, g.generateField(f))
	}

	displayName := def.DisplayName
	if displayName == "" {
		displayName = testID
	}

	return &GeneratedResultSet{DisplayName: displayName, Fields: fields}, true
}

func (g *Generator) generateField(f FieldSpec) GeneratedField {
	out := GeneratedField{Name: f.Name, Unit: f.Unit, Reference: f.Reference()}

	switch f.Kind() {
	case KindQualitative:
		expected, _ := f.ExpectedText()
		out.Value = TextValue(expected)
	case KindQuantitative:
		low, high, _ := f.Bounds()
		out.Value = NumberValue(g.sampler.Sample(low, high))
	default:
		out.Value = TextValue(NotAvailable)
	}

	return out
}
