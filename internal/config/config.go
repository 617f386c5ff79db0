// Package config loads application configuration from flags, environment
// variables, an optional .env file, and defaults, in that precedence order.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the full server configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Catalog   CatalogConfig
	Server    ServerConfig
	Detector  DetectorConfig
	Recommend RecommendConfig
	Feedback  FeedbackConfig
	Playlists PlaylistsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds the base directory for all server state (store, search
// index, product images, feedback log).
type DataConfig struct {
	BasePath string
}

// CatalogConfig holds product catalog configuration.
type CatalogConfig struct {
	// Path to the catalog CSV. Defaults to {data}/catalog.csv.
	Path string
	// Watch reloads the catalog when the file changes (default: true).
	Watch bool
	// ReloadDebounce coalesces rapid file events into one reload.
	ReloadDebounce time.Duration
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AdvertiseMDNS  bool
	MaxUploadBytes int64 // cap on uploaded photo size
}

// DetectorConfig holds emotion detector configuration.
type DetectorConfig struct {
	// CascadeFile is a pigo face cascade. When empty, detection scores the
	// whole image instead of a face region.
	CascadeFile string
	// MinConfidence gates recommendations (default: 0.6).
	MinConfidence float64
	// InferenceURL points at an optional remote classification service.
	// When empty, only local detection runs.
	InferenceURL     string
	InferenceToken   string
	InferenceTimeout time.Duration
}

// RecommendConfig holds recommendation configuration.
type RecommendConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// FeedbackConfig holds feedback log configuration.
type FeedbackConfig struct {
	// LogPath is the append-only CSV log. Defaults to {data}/feedback.csv.
	LogPath string
	// Rate limiting for submissions, per client IP.
	RatePerMinute int
	RateBurst     int
}

// PlaylistsConfig holds the optional playlist provider integration.
// The integration is disabled unless both credentials are set.
type PlaylistsConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIBaseURL   string
}

// LoadConfig loads configuration with precedence:
// flags > environment > .env file > defaults.
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for server data")
	catalogPath := flag.String("catalog", "", "Path to the product catalog CSV")
	catalogWatch := flag.String("catalog-watch", "", "Reload the catalog on file changes (default: true)")
	serverName := flag.String("server-name", "", "Advertised server name")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	cascadeFile := flag.String("cascade-file", "", "Path to a pigo face cascade")
	minConfidence := flag.String("min-confidence", "", "Detection confidence required for recommendations (default: 0.6)")
	inferenceURL := flag.String("inference-url", "", "Remote emotion inference service URL")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	// .env values become environment variables unless already set.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: stringValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: stringValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: stringValue(*dataPath, "DATA_PATH", ""),
		},
		Catalog: CatalogConfig{
			Path:  stringValue(*catalogPath, "CATALOG_PATH", ""),
			Watch: boolValue(*catalogWatch, "CATALOG_WATCH", true),
		},
		Server: ServerConfig{
			Name:          stringValue(*serverName, "SERVER_NAME", "MoodShop Server"),
			Port:          stringValue(*serverPort, "SERVER_PORT", "8080"),
			AdvertiseMDNS: boolValue("", "ADVERTISE_MDNS", true),
		},
		Detector: DetectorConfig{
			CascadeFile:    stringValue(*cascadeFile, "CASCADE_FILE", ""),
			MinConfidence:  floatValue(*minConfidence, "MIN_CONFIDENCE", 0.6),
			InferenceURL:   stringValue(*inferenceURL, "INFERENCE_URL", ""),
			InferenceToken: stringValue("", "INFERENCE_TOKEN", ""),
		},
		Recommend: RecommendConfig{
			DefaultLimit: intValue("", "RECOMMEND_LIMIT", 5),
			MaxLimit:     intValue("", "RECOMMEND_MAX_LIMIT", 20),
		},
		Feedback: FeedbackConfig{
			LogPath:       stringValue("", "FEEDBACK_LOG_PATH", ""),
			RatePerMinute: intValue("", "FEEDBACK_RATE_PER_MINUTE", 10),
			RateBurst:     intValue("", "FEEDBACK_RATE_BURST", 3),
		},
		Playlists: PlaylistsConfig{
			ClientID:     stringValue("", "SPOTIFY_CLIENT_ID", ""),
			ClientSecret: stringValue("", "SPOTIFY_CLIENT_SECRET", ""),
			TokenURL:     stringValue("", "PLAYLIST_TOKEN_URL", "https://accounts.spotify.com/api/token"),
			APIBaseURL:   stringValue("", "PLAYLIST_API_URL", "https://api.spotify.com/v1"),
		},
	}

	var err error
	if cfg.Catalog.ReloadDebounce, err = durationValue("", "CATALOG_RELOAD_DEBOUNCE", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = durationValue("", "SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = durationValue("", "SERVER_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = durationValue("", "SERVER_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Detector.InferenceTimeout, err = durationValue("", "INFERENCE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	cfg.Server.MaxUploadBytes = int64(intValue("", "MAX_UPLOAD_BYTES", 10<<20))

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v out of range [0,1]", c.Detector.MinConfidence)
	}
	if c.Recommend.DefaultLimit < 1 {
		return errors.New("recommendation limit must be at least 1")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return errors.New("recommendation max limit must be >= default limit")
	}
	if c.Server.MaxUploadBytes < 1024 {
		return errors.New("max upload size must be at least 1KiB")
	}
	return nil
}

// PlaylistsConfigured reports whether the playlist provider credentials
// are present.
func (c *Config) PlaylistsConfigured() bool {
	return c.Playlists.ClientID != "" && c.Playlists.ClientSecret != ""
}

// expandPaths expands ~ and fills path defaults derived from the data dir.
func (c *Config) expandPaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	if c.Data.BasePath, err = expandPath(c.Data.BasePath, filepath.Join(home, "MoodShop", "data")); err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path, filepath.Join(c.Data.BasePath, "catalog.csv")); err != nil {
		return fmt.Errorf("invalid catalog path: %w", err)
	}
	if c.Feedback.LogPath, err = expandPath(c.Feedback.LogPath, filepath.Join(c.Data.BasePath, "feedback.csv")); err != nil {
		return fmt.Errorf("invalid feedback log path: %w", err)
	}
	if c.Detector.CascadeFile != "" {
		if c.Detector.CascadeFile, err = expandPath(c.Detector.CascadeFile, ""); err != nil {
			return fmt.Errorf("invalid cascade file path: %w", err)
		}
	}
	return nil
}

// expandPath expands a leading ~ and makes the path absolute. An empty
// path resolves to defaultPath.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path: %w", err)
		}
		path = abs
	}

	return filepath.Clean(path), nil
}

// stringValue returns the first non-empty of flag, environment, default.
func stringValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// boolValue parses "true", "1", "yes" (case-insensitive) as true.
func boolValue(flagValue, envKey string, defaultValue bool) bool {
	v := stringValue(flagValue, envKey, "")
	if v == "" {
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func intValue(flagValue, envKey string, defaultValue int) int {
	v := stringValue(flagValue, envKey, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func floatValue(flagValue, envKey string, defaultValue float64) float64 {
	v := stringValue(flagValue, envKey, "")
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func durationValue(flagValue, envKey string, defaultValue time.Duration) (time.Duration, error) {
	v := stringValue(flagValue, envKey, "")
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return d, nil
}

// loadEnvFile reads KEY=value lines into the environment. Existing
// environment variables win over file values.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- config file path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("set env %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
