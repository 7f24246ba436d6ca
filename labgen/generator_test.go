// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labgen

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// structure drops sampled values so repeated generations can be compared.
func structure(set *GeneratedResultSet) []GeneratedField {
	out := make([]GeneratedField, 0, len(set.Fields))
	for _, f := range set.Fields {
		if f.Value.IsNumeric() {
			f.Value = Value{}
		}

		out = append(out, f)
	}

	return out
}

func TestGenerateEveryPanel(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	g := NewGenerator(c, NewSampler(NewSeededSource(1)))

	for _, def := range c.Definitions() {
		set, ok := g.Generate(def.ID)
		if !ok {
			t.Fatalf("expected result set for %q", def.ID)
		}

		if set.DisplayName != def.DisplayName {
			t.Fatalf("expected display name %q, got %q", def.DisplayName, set.DisplayName)
		}

		if len(set.Fields) != len(def.Fields) {
			t.Fatalf("expected %d fields for %q, got %d", len(def.Fields), def.ID, len(set.Fields))
		}

		for i, spec := range def.Fields {
			got := set.Fields[i]
			if got.Name != spec.Name {
				t.Fatalf("expected field %d of %q to be %q, got %q", i, def.ID, spec.Name, got.Name)
			}

			if got.Unit != spec.Unit {
				t.Fatalf("expected unit %q for %s, got %q", spec.Unit, spec.Name, got.Unit)
			}

			if got.Reference != spec.Reference() {
				t.Fatalf("expected reference %q for %s, got %q", spec.Reference(), spec.Name, got.Reference)
			}

			switch spec.Kind() {
			case KindQuantitative:
				low, high, _ := spec.Bounds()
				lower, upper := Window(low, high)

				v, numeric := got.Value.Float64()
				if !numeric {
					t.Fatalf("expected numeric value for %s", spec.Name)
				}

				if v < lower-0.05 || v > upper+0.05 {
					t.Fatalf("expected %s within [%v, %v], got %v", spec.Name, lower, upper, v)
				}
			case KindQualitative:
				expected, _ := spec.ExpectedText()
				if got.Value.String() != expected || got.Reference != expected {
					t.Fatalf("expected %s value and reference %q, got %q / %q", spec.Name, expected, got.Value, got.Reference)
				}
			}
		}
	}
}

func TestGenerateUnknownTest(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultCatalog(), nil)

	set, ok := g.Generate("Nonexistent Panel")
	if ok || set != nil {
		t.Fatalf("expected absent result, got %+v", set)
	}
}

func TestGenerateEmptyPanelIsNotAbsent(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog([]PanelDefinition{{ID: "Empty"}})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	set, ok := NewGenerator(c, nil).Generate("Empty")
	if !ok {
		t.Fatalf("expected empty panel to be present")
	}

	if set.DisplayName != "Empty" {
		t.Fatalf("expected display name to fall back to test id, got %q", set.DisplayName)
	}

	if len(set.Fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(set.Fields))
	}
}

func TestGenerateBloodGlucose(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultCatalog(), NewSampler(fixedSource(0.5)))

	set, ok := g.Generate("Blood Glucose")
	if !ok {
		t.Fatalf("expected Blood Glucose result")
	}

	want := &GeneratedResultSet{
		DisplayName: "Blood Glucose",
		Fields: []GeneratedField{
			{Name: "Fasting Glucose", Value: NumberValue(85), Unit: "mg/dL", Reference: "70 - 100"},
			{Name: "Random Glucose", Value: NumberValue(105), Unit: "mg/dL", Reference: "70 - 140"},
		},
	}

	if diff := cmp.Diff(want, set, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("unexpected result set (-want +got):\n%s", diff)
	}
}

func TestGenerateUrinalysis(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultCatalog(), NewSampler(fixedSource(0)))

	set, _ := g.Generate("Urinalysis")

	want := []GeneratedField{
		{Name: "Appearance", Value: TextValue("Clear"), Unit: "", Reference: "Clear"},
		{Name: "pH", Value: NumberValue(4.7), Unit: "", Reference: "5 - 8"},
		{Name: "Protein", Value: TextValue("Negative"), Unit: "", Reference: "Negative"},
		{Name: "Glucose", Value: TextValue("Negative"), Unit: "", Reference: "Negative"},
	}

	if diff := cmp.Diff(want, set.Fields, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestGenerateUnresolvableField(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog([]PanelDefinition{{
		ID:     "Draft",
		Fields: []FieldDefinition{{Name: "Pending", Unit: "mg/dL"}},
	}})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	set, _ := NewGenerator(c, nil).Generate("Draft")

	got := set.Fields[0]
	if got.Value.String() != NotAvailable || got.Reference != NotAvailable {
		t.Fatalf("expected N/A value and reference, got %q / %q", got.Value, got.Reference)
	}

	if got.Unit != "mg/dL" {
		t.Fatalf("expected unit to be copied, got %q", got.Unit)
	}
}

func TestGenerateStructureIsStable(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultCatalog(), nil)

	first, _ := g.Generate("Liver Function Test")
	for range 10 {
		next, _ := g.Generate("Liver Function Test")

		if diff := cmp.Diff(structure(first), structure(next), cmp.AllowUnexported(Value{})); diff != "" {
			t.Fatalf("structure changed between calls (-first +next):\n%s", diff)
		}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultCatalog(), nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for _, id := range g.Catalog().IDs() {
				if _, ok := g.Generate(id); !ok {
					t.Errorf("expected %q to generate", id)
				}
			}
		}()
	}

	wg.Wait()
}

func TestValueUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantNumeric bool
		wantString  string
	}{
		{name: "number", input: `85.5`, wantNumeric: true, wantString: "85.5"},
		{name: "text", input: `"Clear"`, wantNumeric: false, wantString: "Clear"},
		{name: "null", input: `null`, wantNumeric: false, wantString: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("failed to decode %s: %v", tt.input, err)
			}

			if v.IsNumeric() != tt.wantNumeric || v.String() != tt.wantString {
				t.Fatalf("decoded %s to numeric=%v %q", tt.input, v.IsNumeric(), v.String())
			}
		})
	}

	kept := TextValue("Negative")
	if err := json.Unmarshal([]byte(`null`), &kept); err != nil {
		t.Fatalf("failed to decode null: %v", err)
	}

	if kept.String() != "Negative" {
		t.Fatalf("expected null to leave the value unchanged, got %q", kept.String())
	}

	var field GeneratedField
	if err := json.Unmarshal([]byte(`{"name":"pH","value":null}`), &field); err != nil {
		t.Fatalf("failed to decode field: %v", err)
	}

	if field.Value.IsNumeric() {
		t.Fatalf("expected null value not to decode as a number")
	}
}

func TestGeneratedResultSetJSON(t *testing.T) {
	t.Parallel()

	set := GeneratedResultSet{
		DisplayName: "Urinalysis",
		Fields: []GeneratedField{
			{Name: "Appearance", Value: TextValue("Clear"), Reference: "Clear"},
			{Name: "pH", Value: NumberValue(6.5), Reference: "5 - 8"},
		},
	}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	want := `{"displayName":"Urinalysis","fields":[` +
		`{"name":"Appearance","value":"Clear","unit":"","reference":"Clear"},` +
		`{"name":"pH","value":6.5,"unit":"","reference":"5 - 8"}]}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", data, want)
	}

	var decoded GeneratedResultSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if v, ok := decoded.Fields[1].Value.Float64(); !ok || v != 6.5 {
		t.Fatalf("expected numeric 6.5 after decode, got %v", decoded.Fields[1].Value)
	}
}
