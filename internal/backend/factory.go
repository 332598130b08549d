package backend

import (
	"fmt"
	"log/slog"

	"foodstreet/internal/ledger"
	"foodstreet/internal/storage"
)

// NewRecordSource builds the dashboard's record source from config.
func NewRecordSource(config Config) (*SourceResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid record source type: %s", config.Type)
	}

	switch config.Type {
	case MirrorSource:
		mirror, err := storage.NewMirror(config.MirrorDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize mirror source: %w", err)
		}
		slog.Info("Initialized mirror record source", "db_path", config.MirrorDBPath)
		return &SourceResult{
			Source:  mirror,
			Cleanup: mirror.Close,
		}, nil
	default:
		slog.Info("Initialized CSV record source", "path", config.CSVPath)
		return &SourceResult{
			Source:  ledger.NewFileSource(config.CSVPath),
			Cleanup: nil,
		}, nil
	}
}
