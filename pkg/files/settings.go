package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

const (
	// SettingsFile is read from the working directory when no path is given
	SettingsFile = "jobdesk.yaml"
	// EnvFile is loaded, if present, before environment overrides apply
	EnvFile = ".env"

	EnvAPIBase = "JOBDESK_API_BASE"
	EnvLogFile = "JOBDESK_LOG_FILE"
	EnvRPS     = "JOBDESK_RPS"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadSettings builds the configuration: defaults, then the yaml file,
// then .env, then JOBDESK_* environment variables. A missing settings file
// is not an error; an explicitly named one that cannot be read is.
func LoadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = SettingsFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load(EnvFile)

	if err := applyEnv(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// WriteSettings saves the configuration as yaml, creating parent directories
func WriteSettings(path string, settings *models.Settings) error {
	if path == "" {
		path = SettingsFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

func applyEnv(settings *models.Settings) error {
	if base := os.Getenv(EnvAPIBase); base != "" {
		settings.API.BaseURL = base
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		settings.Log.File = logFile
	}
	if rps := os.Getenv(EnvRPS); rps != "" {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRPS, rps, err)
		}
		settings.API.RequestsPerSecond = v
	}
	settings.API.BaseURL = strings.TrimRight(settings.API.BaseURL, "/")
	return nil
}

// expandEnvVars replaces ${VAR} with the variable's value, leaving unknown
// variables as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return match
	})
}
