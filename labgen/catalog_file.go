/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type panelFile struct {
	Panels []panelEntry `yaml:"panels"`
}

type panelEntry struct {
	ID          string       `yaml:"id"`
	DisplayName string       `yaml:"display_name"`
	Fields      []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	Name    string   `yaml:"name"`
	Unit    string   `yaml:"unit"`
	RefText *string  `yaml:"ref_text"`
	RefLow  *float64 `yaml:"ref_low"`
	RefHigh *float64 `yaml:"ref_high"`
}

// LoadCatalogFile reads a YAML panel file:
//
//	panels:
//	  - id: Blood Glucose
//	    display_name: Blood Glucose
//	    fields:
//	      - {name: Fasting Glucose, unit: mg/dL, ref_low: 70, ref_high: 100}
//	      - {name: Appearance, ref_text: Clear}
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := ParseCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	logger.Info("Loaded lab catalog", "path", path, "panels", c.Len())

	return c, nil
}

// ParseCatalog decodes a YAML panel document into a catalog.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var file panelFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	defs := make([]PanelDefinition, 0, len(file.Panels))
	for _, p := range file.Panels {
		fields := make([]FieldDefinition, 0, len(p.Fields))
		for _, f := range p.Fields {
			fields = append(fields, FieldDefinition(f))
		}

		defs = append(defs, PanelDefinition{ID: p.ID, DisplayName: p.DisplayName, Fields: fields})
	}

	return NewCatalog(defs)
}
