package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "steering.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/steering"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
	// DefaultDocsDir is the default documents directory name.
	DefaultDocsDir = ".steering"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/steering/config.yaml)
// 3. Project config (steering.yaml in current or parent directories)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Auto-detect the docs directory if not set.
	if config.Docs.Dir == "" {
		if dir := l.findDocsDir(); dir != "" {
			config.Docs.Dir = dir
			l.logger.Debug("Auto-detected docs directory", slog.String("path", dir))
		} else {
			config.Docs.Dir = DefaultDocsDir
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// userConfigPath returns the user-level config file path.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for steering.yaml in the current directory
// and its parents.
func (l *Loader) findProjectConfig() string {
	return l.findUpward(ProjectConfigFile, false)
}

// findDocsDir searches for a .steering directory in the current
// directory and its parents.
func (l *Loader) findDocsDir() string {
	return l.findUpward(DefaultDocsDir, true)
}

// findUpward walks up from the current directory looking for a file or
// directory with the given name.
func (l *Loader) findUpward(name string, wantDir bool) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() == wantDir {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
