package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/srv/moodshop"},
		Server: ServerConfig{Port: "8080", MaxUploadBytes: 10 << 20},
		Detector: DetectorConfig{
			MinConfidence: 0.6,
		},
		Recommend: RecommendConfig{DefaultLimit: 5, MaxLimit: 20},
		Feedback:  FeedbackConfig{LogPath: "/srv/moodshop/feedback.csv", RatePerMinute: 10, RateBurst: 3},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Environments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"PRODUCTION", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_MinConfidenceRange(t *testing.T) {
	cfg := validConfig()

	cfg.Detector.MinConfidence = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Detector.MinConfidence = -0.1
	assert.Error(t, cfg.Validate())

	cfg.Detector.MinConfidence = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RecommendLimits(t *testing.T) {
	cfg := validConfig()

	cfg.Recommend.DefaultLimit = 0
	assert.Error(t, cfg.Validate())

	cfg.Recommend.DefaultLimit = 10
	cfg.Recommend.MaxLimit = 5
	assert.Error(t, cfg.Validate())
}

func TestPlaylistsConfigured(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.PlaylistsConfigured())

	cfg.Playlists.ClientID = "id"
	assert.False(t, cfg.PlaylistsConfigured())

	cfg.Playlists.ClientSecret = "secret"
	assert.True(t, cfg.PlaylistsConfigured())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		def  string
		want string
	}{
		{"empty uses default", "", "/default/path", "/default/path"},
		{"tilde expands", "~/moodshop", "", filepath.Join(home, "moodshop")},
		{"absolute stays", "/var/lib/moodshop", "", "/var/lib/moodshop"},
		{"cleans trailing slash", "/var/lib/moodshop/", "", "/var/lib/moodshop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.in, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPaths_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Path = ""
	cfg.Feedback.LogPath = ""

	require.NoError(t, cfg.expandPaths())

	assert.Equal(t, filepath.Join(cfg.Data.BasePath, "catalog.csv"), cfg.Catalog.Path)
	assert.Equal(t, filepath.Join(cfg.Data.BasePath, "feedback.csv"), cfg.Feedback.LogPath)
}

func TestStringValue_Precedence(t *testing.T) {
	t.Setenv("MOODSHOP_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", stringValue("from-flag", "MOODSHOP_TEST_KEY", "default"))
	assert.Equal(t, "from-env", stringValue("", "MOODSHOP_TEST_KEY", "default"))
	assert.Equal(t, "default", stringValue("", "MOODSHOP_TEST_KEY_MISSING", "default"))
}

func TestBoolValue(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"TRUE", false, true},
		{"false", true, false},
		{"0", true, false},
		{"", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, boolValue(tt.in, "MOODSHOP_UNSET_BOOL", tt.def), "boolValue(%q, def=%v)", tt.in, tt.def)
	}
}

func TestDurationValue(t *testing.T) {
	got, err := durationValue("", "MOODSHOP_UNSET_DURATION", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, got)

	t.Setenv("MOODSHOP_TEST_DURATION", "150ms")
	got, err = durationValue("", "MOODSHOP_TEST_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, got)

	t.Setenv("MOODSHOP_TEST_DURATION", "nonsense")
	_, err = durationValue("", "MOODSHOP_TEST_DURATION", time.Second)
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nMOODSHOP_ENVFILE_A=hello\nMOODSHOP_ENVFILE_B=\"quoted\"\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("MOODSHOP_ENVFILE_A", "") // ensure unset semantics under t.Setenv
	os.Unsetenv("MOODSHOP_ENVFILE_A")
	t.Setenv("MOODSHOP_ENVFILE_B", "already-set")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "hello", os.Getenv("MOODSHOP_ENVFILE_A"))
	// Existing environment wins over the file.
	assert.Equal(t, "already-set", os.Getenv("MOODSHOP_ENVFILE_B"))
}

func TestLoadEnvFile_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT A VALID LINE\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}
