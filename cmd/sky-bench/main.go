package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	sky "github.com/davidcoallier/sky"
	cfgpkg "github.com/davidcoallier/sky/internal/config"
	logpkg "github.com/davidcoallier/sky/pkg/log"
)

// sky-bench benchmarks a database by iterating through every event of an
// object file, optionally several times, and reporting the total event
// count and wall-clock time.

func main() {
	var (
		objectType string
		iterations int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "sky-bench [flags] PATH",
		Short: "Benchmark full-database scans",
		Long: "Benchmark full-database scans.\n\n" +
			"PATH is a database directory; a bare name is resolved under the\n" +
			"configured data directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("database path required")
			}
			if objectType == "" {
				return errors.New("object type (-o) is required")
			}
			if iterations <= 0 {
				iterations = 1
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)

			level, err := logpkg.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = logpkg.InfoLevel
			}
			var formatter logpkg.Formatter = &logpkg.TextFormatter{}
			if cfg.LogFormat == "json" {
				formatter = &logpkg.JSONFormatter{}
			}
			logger := logpkg.NewLogger(
				logpkg.WithLevel(level),
				logpkg.WithFormatter(formatter),
			).With(logpkg.Component("bench"))

			opts := sky.Options{
				BlockSize: cfg.BlockSize,
				Logger:    logger,
			}
			if cfg.Fsync == "never" {
				opts.Fsync = sky.FsyncNever
			}

			dbPath := cfgpkg.ResolvePath(cfg.DataDir, args[0])
			logger.Debug("database resolved", logpkg.Str("path", dbPath))

			start := time.Now()
			total, err := benchmark(dbPath, objectType, iterations, opts)
			if err != nil {
				return err
			}
			fmt.Printf("Total events processed: %d\n", total)
			fmt.Printf("Elapsed Time: %.3f seconds\n", time.Since(start).Seconds())
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&objectType, "object-type", "o", "", "object type to scan (required)")
	rootCmd.Flags().IntVarP(&iterations, "iterations", "i", 1, "number of full scans to run")
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (JSON or YAML)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// benchmark opens the object file and runs the requested number of full
// PathIterator+Cursor scans, returning the total events visited.
func benchmark(path, objectType string, iterations int, opts sky.Options) (int, error) {
	db := sky.NewDatabase(path)
	of := db.ObjectFile(objectType, opts)
	if err := of.Open(); err != nil {
		return 0, err
	}
	defer of.Close()

	total := 0
	for i := 0; i < iterations; i++ {
		cur := sky.NewCursor()
		it := of.NewPathIterator()
		for it.Next(cur) {
			for {
				ev, err := cur.NextEvent()
				if err != nil {
					return 0, err
				}
				if ev == nil {
					break
				}
				total++
			}
		}
	}
	return total, nil
}
