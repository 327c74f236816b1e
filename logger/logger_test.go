package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToLogrusLogType(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{input: "error", expected: logrus.ErrorLevel},
		{input: "WARN", expected: logrus.WarnLevel},
		{input: "warning", expected: logrus.WarnLevel},
		{input: " Info ", expected: logrus.InfoLevel},
		{input: "debug", expected: logrus.DebugLevel},
		{input: "trace", expected: logrus.ErrorLevel},
		{input: "", expected: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringToLogrusLogType(tt.input))
		})
	}
}

func TestSetup(t *testing.T) {
	cfg := config.GetDefault()
	cfg.Logs.Level = "warn"
	cfg.Logs.OutputLogsAsJSON = true

	Setup(*cfg)

	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
}

func TestSetupLogsSettingsWithoutToken(t *testing.T) {
	var output bytes.Buffer
	logrus.SetOutput(&output)
	defer logrus.SetOutput(os.Stderr)

	cfg := config.GetDefault()
	cfg.Logs.Level = "info"
	cfg.Logs.OutputLogsAsJSON = true
	cfg.Github.Token = "ghp_secret"
	cfg.Github.Year = 2024

	Setup(*cfg)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
	assert.Equal(t, "logger configured", entry["msg"])
	assert.Equal(t, "info", entry["logLevel"])
	assert.Equal(t, "json", entry["format"])
	assert.EqualValues(t, 2024, entry["year"])
	assert.Equal(t, true, entry["tokenAvailable"])
	assert.NotContains(t, output.String(), "ghp_secret")
}
