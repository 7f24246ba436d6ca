/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdesk/cmd"
	"github.com/humaidq/labdesk/logging"
)

func main() {
	app := &cli.Command{
		Name:  "labdesk",
		Usage: "Labdesk - Synthetic Lab Reports",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdGenerate,
			cmd.CmdTests,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Logger(logging.SourceApp).Fatal("labdesk failed", "error", err)
	}
}
