package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "birdroyale.log"
)

// setupLogging sends logs to logs/birdroyale.log when debug is set and
// discards them otherwise; the terminal belongs to the game. The returned
// file is nil when logging is off.
func setupLogging(debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.Nop(), nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil
	}
	log := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	log.Info().Msg("debug logging started")
	return log, f
}

type cleaner interface {
	Cleanup()
}

// crashCleanup records a recovered panic and releases what the deferred
// calls would have, since os.Exit skips them.
func crashCleanup(log zerolog.Logger, logFile *os.File, sounds cleaner, r any) {
	log.Error().Interface("panic", r).Msg("crashed")
	sounds.Cleanup()
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
	}
}
