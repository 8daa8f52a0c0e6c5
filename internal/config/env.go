package config

import (
	"os"
	"strconv"
)

// FromEnv overlays SKY_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("SKY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SKY_BLOCK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BlockSize = n
		}
	}
	if v := os.Getenv("SKY_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("SKY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SKY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
