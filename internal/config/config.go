package config

import (
	"os"
	"strconv"
)

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func mustFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func LoadConfig() (*Config, error) {
	dataDir := getenv("DATA_DIR", "./data")

	cfg := &Config{
		DataDir:          dataDir,
		ListenAddr:       getenv("LISTEN_ADDR", "127.0.0.1:8090"),
		SeekStepSeconds:  mustFloat(getenv("SEEK_STEP_SECONDS", "15"), 15),
		VolumeStep:       mustFloat(getenv("VOLUME_STEP", "0.1"), 0.1),
		ShortcutsEnabled: getenv("SHORTCUTS_ENABLED", "true") == "true",
		SimItemSeconds:   mustFloat(getenv("SIM_ITEM_SECONDS", "60"), 60),
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, ErrConfig("DATA_DIR not writable: " + cfg.DataDir)
	}
	return cfg, nil
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }
