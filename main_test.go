package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		environ func(t *testing.T) []string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		"defaults from env only": {
			environ: func(t *testing.T) []string {
				return []string{"GOOGLE_API_KEY=secret"}
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "secret", cfg.GoogleAPIKey)
				assert.Equal(t, "gemini-2.0-flash-001", cfg.GeminiModel)
				assert.Equal(t, ":8501", cfg.HTTPAddr)
				assert.Equal(t, 60*time.Second, cfg.GeminiRequestTimeout)
				assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
				assert.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
				assert.False(t, cfg.TelemetryEnabled)
			},
		},
		"missing api key": {
			environ: func(t *testing.T) []string { return nil },
			wantErr: true,
		},
		"api key from config file": {
			environ: func(t *testing.T) []string {
				return []string{"CONFIG_FILE=" + writeConfigFile(t, `{"GOOGLE_API_KEY": "from-file", "HTTP_ADDR": ":9000"}`)}
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-file", cfg.GoogleAPIKey)
				assert.Equal(t, ":9000", cfg.HTTPAddr)
			},
		},
		"environment wins over config file": {
			environ: func(t *testing.T) []string {
				return []string{
					"CONFIG_FILE=" + writeConfigFile(t, `{"GOOGLE_API_KEY": "from-file"}`),
					"GOOGLE_API_KEY=from-env",
				}
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env", cfg.GoogleAPIKey)
			},
		},
		"non-string values in config file": {
			environ: func(t *testing.T) []string {
				return []string{"CONFIG_FILE=" + writeConfigFile(t, `{"GOOGLE_API_KEY": "k", "TELEMETRY_ENABLED": true, "MAX_UPLOAD_BYTES": 1024}`)}
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.TelemetryEnabled)
				assert.EqualValues(t, 1024, cfg.MaxUploadBytes)
			},
		},
		"explicit config file missing": {
			environ: func(t *testing.T) []string {
				return []string{"CONFIG_FILE=" + filepath.Join(t.TempDir(), "absent.json"), "GOOGLE_API_KEY=k"}
			},
			wantErr: true,
		},
		"config file is not an object": {
			environ: func(t *testing.T) []string {
				return []string{"CONFIG_FILE=" + writeConfigFile(t, `["GOOGLE_API_KEY"]`), "GOOGLE_API_KEY=k"}
			},
			wantErr: true,
		},
		"invalid duration": {
			environ: func(t *testing.T) []string {
				return []string{"GOOGLE_API_KEY=k", "SESSION_TTL=forever"}
			},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := loadConfig(tc.environ(t))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}
