// Package backend selects the sheet store implementation from configuration.
package backend

import (
	"context"
	"fmt"

	"finboard/internal/config"
	"finboard/internal/sheets"
	"finboard/internal/sheets/google"
	"finboard/internal/sheets/memory"
)

// New builds the store named by cfg.DataBackend. The memory backend is for
// local development and tests; production runs against Google Sheets.
func New(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	switch cfg.DataBackend {
	case "memory":
		return memory.New(), nil
	case "sheets":
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.SpreadsheetID,
			CredentialsJSON: cfg.ServiceAccountJSON,
			CredentialsFile: cfg.ServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("sheets backend: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
