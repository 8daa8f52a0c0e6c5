// Package log provides sky's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context, backed by pluggable
// Formatter and Output implementations.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("bench"))
//	l.Info("scan complete", log.Int("events", 1042))
//
// Library code that receives no logger uses NewNopLogger, which drops
// everything.
package log
