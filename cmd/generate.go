/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdesk/labgen"
)

var CmdGenerate = newGenerateCommand()

var CmdTests = newTestsCommand()

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a synthetic result set for a lab test",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "test",
				Aliases:  []string{"t"},
				Usage:    "test ID as listed by the tests command (case-sensitive)",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for reproducible values",
			},
			catalogFlag(),
		},
		Action: generate,
	}
}

func newTestsCommand() *cli.Command {
	return &cli.Command{
		Name:   "tests",
		Usage:  "List the lab tests in the catalog",
		Flags:  []cli.Flag{catalogFlag()},
		Action: listTests,
	}
}

func outputWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func generate(ctx context.Context, cmd *cli.Command) error {
	catalog, err := loadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}

	var sampler *labgen.Sampler
	if cmd.IsSet("seed") {
		sampler = labgen.NewSampler(labgen.NewSeededSource(uint64(cmd.Int64("seed"))))
	}

	testID := cmd.String("test")

	results, ok := labgen.NewGenerator(catalog, sampler).Generate(testID)
	if !ok {
		return fmt.Errorf("%w %q", errUnknownTest, testID)
	}

	enc := json.NewEncoder(outputWriter(cmd))
	enc.SetIndent("", "  ")

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	return nil
}

func listTests(ctx context.Context, cmd *cli.Command) error {
	catalog, err := loadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(outputWriter(cmd), 0, 4, 2, ' ', 0)
	for _, def := range catalog.Definitions() {
		fmt.Fprintf(tw, "%s\t%s\t%d fields\n", def.ID, def.DisplayName, len(def.Fields))
	}

	return tw.Flush()
}
