package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	assert.Equal(t, "5000", cfg.API.ListenPort)
	assert.Equal(t, 2025, cfg.Github.Year)
	assert.Equal(t, 15, cfg.Github.MaxCommitRepositories)
	assert.Equal(t, 50, cfg.Github.MaxOwnedRepositories)
	assert.Empty(t, cfg.Github.Token)
}

func TestApplyEnvironment(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedToken string
		expectedPort  string
		expectedLevel string
		expectedYear  int
	}{
		{
			name:          "No environment keeps defaults",
			env:           map[string]string{},
			expectedPort:  "5000",
			expectedLevel: "debug",
			expectedYear:  2025,
		},
		{
			name: "Environment overrides token, port, level and year",
			env: map[string]string{
				"GITHUB_TOKEN": "ghp_test",
				"LISTEN_PORT":  "8080",
				"LOG_LEVEL":    "warn",
				"STATS_YEAR":   "2024",
			},
			expectedToken: "ghp_test",
			expectedPort:  "8080",
			expectedLevel: "warn",
			expectedYear:  2024,
		},
		{
			name:          "Invalid year is ignored",
			env:           map[string]string{"STATS_YEAR": "last-year"},
			expectedPort:  "5000",
			expectedLevel: "debug",
			expectedYear:  2025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"GITHUB_TOKEN", "LISTEN_PORT", "LOG_LEVEL", "STATS_YEAR"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg := GetDefault()
			applyEnvironment(cfg)

			assert.Equal(t, tt.expectedToken, cfg.Github.Token)
			assert.Equal(t, tt.expectedPort, cfg.API.ListenPort)
			assert.Equal(t, tt.expectedLevel, cfg.Logs.Level)
			assert.Equal(t, tt.expectedYear, cfg.Github.Year)
		})
	}
}
