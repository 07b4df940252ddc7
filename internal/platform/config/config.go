package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir        string
	DBPath         string
	LogPath        string
	BorrowChunkMin int
	TickInterval   time.Duration
}

// fileConfig is the optional tempo.yaml overlay inside the data dir.
type fileConfig struct {
	BorrowChunkMin int    `yaml:"borrow_chunk_min"`
	TickIntervalMS int    `yaml:"tick_interval_ms"`
	LogPath        string `yaml:"log_path"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "tempo.db"),
		LogPath:        filepath.Join(dataDir, "tempo.log"),
		BorrowChunkMin: 10,
		TickInterval:   time.Second,
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "tempo.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var overlay fileConfig
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if overlay.BorrowChunkMin > 0 {
		cfg.BorrowChunkMin = overlay.BorrowChunkMin
	}
	if overlay.TickIntervalMS > 0 {
		cfg.TickInterval = time.Duration(overlay.TickIntervalMS) * time.Millisecond
	}
	if overlay.LogPath != "" {
		cfg.LogPath = overlay.LogPath
	}
	return cfg, nil
}
