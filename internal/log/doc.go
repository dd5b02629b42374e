// Package log provides the application's structured logging, built on top
// of the standard slog package.
//
// This package extends slog to provide:
//   - Clipping of long or multi-line string values (titles, raw cells)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("row dropped",
//	    "row", 42,
//	    "publish_time", raw, // clipped to MaxValueLen runes
//	)
//
//	slog.SetDefault(logger)
package log
