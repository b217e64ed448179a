package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lunaroak/tally-ho/internal/config"
	"github.com/lunaroak/tally-ho/internal/storage"
)

// openStore opens and migrates the local catalog database.
func openStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate catalog database: %w", err)
	}
	return store, nil
}

// defaultDBPath resolves the catalog database location from config, falling
// back to the standard per-user data directory.
func defaultDBPath() (string, error) {
	if configured := viper.GetString("database.path"); configured != "" {
		return config.ExpandPath(configured), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "tally", "tally.db"), nil
}
