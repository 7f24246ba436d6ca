/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

// DefaultPanelDefinitions returns the panels shipped with labdesk.
func DefaultPanelDefinitions() []PanelDefinition {
	return []PanelDefinition{
		{
			ID: "CBC", DisplayName: "Complete Blood Count (CBC)",
			Fields: []FieldDefinition{
				{Name: "Hemoglobin", Unit: "g/dL", RefLow: num(12), RefHigh: num(16)},
				{Name: "RBC", Unit: "Million/µL", RefLow: num(4.0), RefHigh: num(5.5)},
				{Name: "WBC", Unit: "×10^3/µL", RefLow: num(4.0), RefHigh: num(11.0)},
				{Name: "Platelets", Unit: "×10^3/µL", RefLow: num(150), RefHigh: num(450)},
			},
		},
		{
			ID: "Liver Function Test", DisplayName: "Liver Function Test (LFT)",
			Fields: []FieldDefinition{
				{Name: "ALT (SGPT)", Unit: "U/L", RefLow: num(7), RefHigh: num(56)},
				{Name: "AST (SGOT)", Unit: "U/L", RefLow: num(10), RefHigh: num(40)},
				{Name: "Alkaline Phosphatase", Unit: "U/L", RefLow: num(44), RefHigh: num(147)},
				{Name: "Bilirubin Total", Unit: "mg/dL", RefLow: num(0.1), RefHigh: num(1.2)},
			},
		},
		{
			ID: "Thyroid Panel", DisplayName: "Thyroid Panel",
			Fields: []FieldDefinition{
				{Name: "TSH", Unit: "µIU/mL", RefLow: num(0.4), RefHigh: num(4.0)},
				{Name: "Free T3", Unit: "pg/mL", RefLow: num(2.3), RefHigh: num(4.2)},
				{Name: "Free T4", Unit: "ng/dL", RefLow: num(0.9), RefHigh: num(1.7)},
			},
		},
		{
			ID: "Blood Glucose", DisplayName: "Blood Glucose",
			Fields: []FieldDefinition{
				{Name: "Fasting Glucose", Unit: "mg/dL", RefLow: num(70), RefHigh: num(100)},
				{Name: "Random Glucose", Unit: "mg/dL", RefLow: num(70), RefHigh: num(140)},
			},
		},
		{
			ID: "Urinalysis", DisplayName: "Urinalysis",
			Fields: []FieldDefinition{
				{Name: "Appearance", RefText: text("Clear")},
				{Name: "pH", Unit: "", RefLow: num(5), RefHigh: num(8)},
				{Name: "Protein", RefText: text("Negative")},
				{Name: "Glucose", RefText: text("Negative")},
			},
		},
	}
}

// DefaultCatalog returns a catalog of the shipped panels.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPanelDefinitions())
	if err != nil {
		// shipped definitions are always valid
		panic(err)
	}

	return c
}
