/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdesk/labgen"
)

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Sources: cli.EnvVars("LAB_CATALOG"),
		Usage:   "YAML file with lab panel definitions (defaults to the built-in panels)",
	}
}

// loadCatalog returns the built-in catalog unless a panel file is given.
func loadCatalog(path string) (*labgen.Catalog, error) {
	if path == "" {
		return labgen.DefaultCatalog(), nil
	}

	return labgen.LoadCatalogFile(path)
}
