package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/CIDgravity/snakelet"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// config structure
type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Github GithubConfig `mapstructure:"GITHUB"`
	Tasks  TasksConfig  `mapstructure:"TASKS"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
}

type APIConfig struct {
	ListenPort   string   `mapstructure:"ListenPort"`
	AllowOrigins []string `mapstructure:"AllowOrigins"`
}

type GithubConfig struct {
	Token                 string `mapstructure:"Token"`
	Year                  int    `mapstructure:"Year"` // fixed target year of every stats card
	MaxCommitRepositories int    `mapstructure:"MaxCommitRepositories"`
	MaxOwnedRepositories  int    `mapstructure:"MaxOwnedRepositories"`
	RequestTimeoutSeconds int    `mapstructure:"RequestTimeoutSeconds"`
	DefaultHourlyLimit    int    `mapstructure:"DefaultHourlyLimit"` // used when github does not report a graphql quota
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
	MaxBatchSize            int `mapstructure:"MaxBatchSize"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJSON"`
}

// Load will build the configuration from defaults, the optional config/config.toml file,
// the optional .env file and finally the process environment
func Load() (*Config, error) {
	cfg := GetDefault()

	configFilePath, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	// the config file is optional, the service can run with defaults and env only
	if configFilePath != "" {
		if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	applyEnvironment(cfg)
	return cfg, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort:   "5000",
			AllowOrigins: []string{"*"},
		},
		Github: GithubConfig{
			Token:                 "",
			Year:                  2025,
			MaxCommitRepositories: 15,
			MaxOwnedRepositories:  50,
			RequestTimeoutSeconds: 15,
			DefaultHourlyLimit:    5000,
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
			MaxBatchSize:            10,
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
		},
	}
}

// findConfigFile look for config/config.toml next to the binary first, then in the working directory
// an empty path is returned when no file exists
func findConfigFile() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	for _, candidate := range []string{dir + "/config/config.toml", "config/config.toml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}

// applyEnvironment override the loaded values with the environment variables if they are set
func applyEnvironment(cfg *Config) {
	if token, found := os.LookupEnv("GITHUB_TOKEN"); found {
		cfg.Github.Token = token
	}

	if port := os.Getenv("LISTEN_PORT"); port != "" {
		cfg.API.ListenPort = port
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logs.Level = level
	}

	if year := os.Getenv("STATS_YEAR"); year != "" {
		if parsed, err := strconv.Atoi(year); err == nil {
			cfg.Github.Year = parsed
		} else {
			log.WithField("value", year).Warn("ignoring invalid STATS_YEAR environment variable")
		}
	}
}
