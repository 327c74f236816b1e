package logger

import (
	"strings"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger and log the settings the stats service runs with
func Setup(cfg config.Config) {
	format := "text"
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJSON {
		format = "json"
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level := StringToLogrusLogType(cfg.Logs.Level)
	logrus.SetLevel(level)

	// the token itself is never logged
	logrus.WithFields(logrus.Fields{
		"logLevel":       level.String(),
		"format":         format,
		"year":           cfg.Github.Year,
		"tokenAvailable": cfg.Github.Token != "",
	}).Info("logger configured")
}

// StringToLogrusLogType will convert string to the right logrus level
// unknown values fall back on error to keep production logs quiet
func StringToLogrusLogType(logLevel string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}
