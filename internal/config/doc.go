// Package config provides loading and environment overlay for sky's
// process configuration. It exposes a Default() baseline, file loading
// from JSON or YAML, and a SKY_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/sky.yml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
