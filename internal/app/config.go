package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths  []string // .ini, .hcl, .yaml files or directories of .hcl files
	SegmentsPath string   // optional; defaults to the analysis span for every instrument
	DatafindPath string   // optional
	OutputDir    string
	ManifestPath string // "-" writes to the app's output
	Tags         []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one configuration file is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is a required configuration field and cannot be empty")
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = "-"
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(cfg.Tags))
	for _, t := range cfg.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToUpper(t))
		}
	}
	cfg.Tags = tags

	return &cfg, nil
}
