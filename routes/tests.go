/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/labdesk/db"
	"github.com/humaidq/labdesk/labgen"
)

// errUnknownTest is the API message for test IDs missing from the catalog.
const errUnknownTest = "unknown test"

// panelResponse is the API form of a catalog panel.
type panelResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Fields      []db.PanelField `json:"fields"`
}

func newPanelResponse(def labgen.TestDefinition) panelResponse {
	displayName := def.DisplayName
	if displayName == "" {
		displayName = def.ID
	}

	return panelResponse{ID: def.ID, DisplayName: displayName, Fields: db.PanelFields(def)}
}

// ListTests returns every panel in the catalog.
func ListTests(c flamego.Context, gen *labgen.Generator) {
	defs := gen.Catalog().Definitions()

	panels := make([]panelResponse, 0, len(defs))
	for _, def := range defs {
		panels = append(panels, newPanelResponse(def))
	}

	writeJSON(c, http.StatusOK, panels)
}

// GetTest returns a single panel definition.
func GetTest(c flamego.Context, gen *labgen.Generator) {
	def, ok := gen.Lookup(c.Param("id"))
	if !ok {
		writeJSONError(c, http.StatusNotFound, errUnknownTest)
		return
	}

	writeJSON(c, http.StatusOK, newPanelResponse(def))
}

// GenerateTestResults fabricates a result set for the requested panel.
func GenerateTestResults(c flamego.Context, gen *labgen.Generator) {
	testID := c.Param("id")

	results, ok := gen.Generate(testID)
	if !ok {
		logger.Debug("Result generation requested for unknown test", "test", testID)
		writeJSONError(c, http.StatusNotFound, errUnknownTest)

		return
	}

	writeJSON(c, http.StatusOK, results)
}
