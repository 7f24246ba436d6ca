/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/labdesk/labgen"
)

// PanelField is the stored description of a catalog field.
type PanelField struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
}

// PanelFields describes the fields of a panel in declaration order.
func PanelFields(def labgen.TestDefinition) []PanelField {
	fields := make([]PanelField, 0, len(def.Fields))
	for _, f := range def.Fields {
		fields = append(fields, PanelField{
			Name:      f.Name,
			Unit:      f.Unit,
			Kind:      f.Kind().String(),
			Reference: f.Reference(),
		})
	}

	return fields
}

// SyncPanels upserts the catalog panels so stored reports can be joined
// against the panel they were generated from. Panels no longer in the
// catalog are removed in the same transaction.
func SyncPanels(ctx context.Context, catalog *labgen.Catalog) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	definitions := catalog.Definitions()
	logger.Infof("Syncing %d lab panel definitions to database...", len(definitions))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin panel sync: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back panel sync", "error", err)
		}
	}()

	query := `
		INSERT INTO lab_panels (test_id, display_name, field_count, fields)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (test_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			field_count = EXCLUDED.field_count,
			fields = EXCLUDED.fields,
			updated_at = now()
	`

	syncCount := 0

	for _, def := range definitions {
		fields, err := json.Marshal(PanelFields(def))
		if err != nil {
			return fmt.Errorf("failed to encode fields for %s: %w", def.ID, err)
		}

		displayName := def.DisplayName
		if displayName == "" {
			displayName = def.ID
		}

		_, err = tx.Exec(ctx, query, def.ID, displayName, len(def.Fields), fields)
		if err != nil {
			return fmt.Errorf("failed to sync lab panel %s: %w", def.ID, err)
		}

		syncCount++
	}

	tag, err := tx.Exec(ctx, `DELETE FROM lab_panels WHERE NOT (test_id = ANY($1))`, catalog.IDs())
	if err != nil {
		return fmt.Errorf("failed to prune lab panels: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit panel sync: %w", err)
	}

	logger.Infof("Successfully synced %d lab panels, removed %d", syncCount, tag.RowsAffected())

	return nil
}

// CountPanels returns the number of synced panels.
func CountPanels(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_panels`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lab panels: %w", err)
	}

	return count, nil
}
