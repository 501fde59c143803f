package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"birdroyale/game"
)

const (
	EnvAddr        = "BIRDROYALE_ADDR"
	EnvTuning      = "BIRDROYALE_TUNING"
	EnvLogLevel    = "BIRDROYALE_LOG_LEVEL"
	EnvLogPretty   = "BIRDROYALE_LOG_PRETTY"
	EnvFrameHz     = "BIRDROYALE_FRAME_HZ"
	EnvBroadcastHz = "BIRDROYALE_BROADCAST_HZ"
)

type Config struct {
	Addr        string
	TuningPath  string
	LogLevel    string
	LogPretty   bool
	FrameHz     int
	BroadcastHz int
	Tuning      game.Tuning
}

// InitConfig loads environment variables from envFile. A missing file is
// fine: the process environment and defaults still apply.
func InitConfig(envFile string) error {
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

func envOr(key, def string) string {
	if v, err := GetEnvVariable(key); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v, err := GetEnvVariable(key)
	if err != nil {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be > 0, got %d", key, n)
	}
	return n, nil
}

// Load reads the server configuration from the environment, plus the tuning
// file it points at.
func Load() (Config, error) {
	cfg := Config{
		Addr:       envOr(EnvAddr, ":8080"),
		TuningPath: envOr(EnvTuning, ""),
		LogLevel:   envOr(EnvLogLevel, "info"),
	}
	if v, err := GetEnvVariable(EnvLogPretty); err == nil {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogPretty, err)
		}
		cfg.LogPretty = pretty
	}

	var err error
	if cfg.FrameHz, err = envInt(EnvFrameHz, 60); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastHz, err = envInt(EnvBroadcastHz, 20); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastHz > cfg.FrameHz {
		return Config{}, fmt.Errorf("broadcast rate %d exceeds frame rate %d", cfg.BroadcastHz, cfg.FrameHz)
	}

	if cfg.Tuning, err = LoadTuning(cfg.TuningPath); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}
