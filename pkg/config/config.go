// Package config holds run configuration and logger setup. Values come from
// defaults, then an optional YAML file, then environment variables; CLI
// flags override all of them.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline configuration values
type Config struct {
	// Dataset selection
	Dataset      string `yaml:"dataset"`
	ProcessedDir string `yaml:"processed_dir"`

	// Output roots
	MappingsDir string `yaml:"mappings_dir"`
	PathsDir    string `yaml:"paths_dir"`

	// Solver selection
	Method    string `yaml:"method"`
	CostModel string `yaml:"cost_model"`
	// MethodOptions is an opaque option string handed to the solver method
	MethodOptions string `yaml:"method_options"`

	// Batch execution
	Threads  int   `yaml:"threads"`
	Seed     int64 `yaml:"seed"`
	NumPairs int   `yaml:"num_pairs"`

	// Edit paths
	Strategy      string `yaml:"path_strategy"`
	ConnectedOnly bool   `yaml:"connected_only"`

	// Statistics
	BucketCount int `yaml:"bucket_count"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults, mirroring the historic tool
// defaults
func Default() Config {
	return Config{
		Dataset:      "MUTAG",
		ProcessedDir: "Data/ProcessedGraphs",
		MappingsDir:  "Results/Mappings",
		PathsDir:     "Results/Paths",
		Method:       "GREEDY",
		CostModel:    "CONSTANT",
		Threads:      1,
		Seed:         42,
		NumPairs:     -1,
		Strategy:     "canonical",
		BucketCount:  10,
		LogFile:      "",
		LogLevel:     "INFO",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order
func Load(file string) (Config, error) {
	cfg := Default()
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", file, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Dataset = getEnv("GEDPATHS_DATASET", c.Dataset)
	c.ProcessedDir = getEnv("GEDPATHS_PROCESSED_DIR", c.ProcessedDir)
	c.MappingsDir = getEnv("GEDPATHS_MAPPINGS_DIR", c.MappingsDir)
	c.PathsDir = getEnv("GEDPATHS_PATHS_DIR", c.PathsDir)
	c.Method = getEnv("GEDPATHS_METHOD", c.Method)
	c.CostModel = getEnv("GEDPATHS_COST_MODEL", c.CostModel)
	c.MethodOptions = getEnv("GEDPATHS_METHOD_OPTIONS", c.MethodOptions)
	c.Threads = getEnvInt("GEDPATHS_THREADS", c.Threads)
	c.Seed = int64(getEnvInt("GEDPATHS_SEED", int(c.Seed)))
	c.NumPairs = getEnvInt("GEDPATHS_NUM_PAIRS", c.NumPairs)
	c.Strategy = getEnv("GEDPATHS_PATH_STRATEGY", c.Strategy)
	c.ConnectedOnly = getEnvBool("GEDPATHS_CONNECTED_ONLY", c.ConnectedOnly)
	c.BucketCount = getEnvInt("GEDPATHS_BUCKET_COUNT", c.BucketCount)
	c.LogFile = getEnv("GEDPATHS_LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("GEDPATHS_LOG_LEVEL", c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseLogLevel maps a config string to a slog level, defaulting to info
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
