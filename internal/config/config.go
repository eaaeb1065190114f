package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the root of the learning API, including the version prefix.
	APIBaseURL string

	// DBPath is the SQLite file holding the credential and the request log.
	DBPath string

	// LogPath is the file the structured logger writes to. The terminal UI
	// owns stdout, so logs never go there.
	LogPath string

	// HTTPTimeout bounds a single HTTP exchange. Zero means no timeout.
	HTTPTimeout time.Duration

	// RecordCommand is the program and arguments used to capture audio for
	// pronunciation practice. The output file path is appended.
	RecordCommand []string

	Debug bool
}

// DefaultAPIBaseURL is the API root used when nothing else is configured.
const DefaultAPIBaseURL = "http://localhost:8000/api/v1"

// DefaultRecordCommand captures 16-bit stereo WAV through ALSA.
var DefaultRecordCommand = []string{"arecord", "-q", "-f", "cd", "-t", "wav"}

// DefaultConfig returns a Config with sensible defaults.
// Paths are left empty and resolved by Load.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:    DefaultAPIBaseURL,
		HTTPTimeout:   60 * time.Second,
		RecordCommand: append([]string(nil), DefaultRecordCommand...),
	}
}

// Load reads an optional .env file, then builds a Config from environment
// variables, falling back to defaults for unset values.
func Load() (Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("LINGUA_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if t := os.Getenv("LINGUA_HTTP_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("LINGUA_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv("LINGUA_RECORD_CMD"); v != "" {
		cfg.RecordCommand = strings.Fields(v)
	}

	if v := os.Getenv("LINGUA_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("LINGUA_DEBUG: %w", err)
		}
		cfg.Debug = b
	}

	var err error
	if cfg.DBPath, err = resolvePath("LINGUA_DB", "XDG_DATA_HOME", ".local/share", "lingua.db"); err != nil {
		return Config{}, err
	}
	if cfg.LogPath, err = resolvePath("LINGUA_LOG_FILE", "XDG_STATE_HOME", ".local/state", "lingua.log"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// resolvePath picks a file path in priority order:
// 1. the explicit environment variable
// 2. $<xdgVar>/lingua/<name>
// 3. ~/<fallback>/lingua/<name>
func resolvePath(envVar, xdgVar, fallback, name string) (string, error) {
	if p := os.Getenv(envVar); p != "" {
		return p, nil
	}

	base := os.Getenv(xdgVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, "lingua", name), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
