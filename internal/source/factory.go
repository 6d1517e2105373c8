package source

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matchview/replay/internal/config"
	"github.com/matchview/replay/internal/source/database"
	"github.com/matchview/replay/internal/source/jsonfile"
	"github.com/matchview/replay/internal/source/remote"
	"github.com/matchview/replay/internal/source/tracking"
)

// NewSource creates a timeline source based on configuration. Every
// source is wrapped so its timeline is validated against the configured
// player count before playback sees it.
func NewSource(cfg config.SourceConfig, players int, log zerolog.Logger) (Source, error) {
	switch cfg.Type {
	case "json":
		return Validated(jsonfile.New(cfg.Path), players), nil
	case "tracking":
		return Validated(tracking.New(cfg.Path), players), nil
	case "remote":
		return Validated(remote.New(cfg.Path, cfg.APIKey), players), nil
	case "sqlite", "postgres":
		mgr := database.NewManager(log)
		if err := mgr.Connect(cfg.Type, cfg.Path); err != nil {
			return nil, fmt.Errorf("connecting %s source: %w", cfg.Type, err)
		}
		return Validated(database.NewLoader(mgr, cfg.RecordingID), players), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}
