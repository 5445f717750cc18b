package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/pkg/api"
	"github.com/jobdesk/jobdesk-terminal/pkg/files"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// UserAgent is sent with every API request; main sets it from the build version
var UserAgent = "jobdesk/dev"

// CommandContext carries the resolved configuration and the API-backed store
// shared by every command
type CommandContext struct {
	ConfigPath string
	Settings   *models.Settings
	Client     *api.Client
	Store      *store.Store
}

// NewCommandContext resolves settings from the config file, the environment
// and the persistent flags of cmd, then builds the client and store
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")

	settings, err := files.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}

	if base, _ := cmd.Flags().GetString("api"); base != "" {
		settings.API.BaseURL = strings.TrimRight(base, "/")
	}
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		settings.Log.File = logFile
	}

	return NewCommandContextFromSettings(configPath, settings), nil
}

// NewCommandContextFromSettings builds the client and store for settings
func NewCommandContextFromSettings(configPath string, settings *models.Settings) *CommandContext {
	client := api.New(settings.API.BaseURL,
		api.WithRateLimit(settings.API.RequestsPerSecond, settings.API.Burst),
		api.WithUserAgent(UserAgent),
	)
	return &CommandContext{
		ConfigPath: configPath,
		Settings:   settings,
		Client:     client,
		Store:      store.New(client),
	}
}

// LoadJobs fetches the collection into the store
func (c *CommandContext) LoadJobs(ctx context.Context) error {
	if err := c.Store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load jobs from %s: %w", c.Settings.API.BaseURL, err)
	}
	return nil
}

// DefaultLogFile is where diagnostics go when no log file is configured
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jobdesk", "jobdesk.log"), nil
}

// SetupLogging sends the standard logger to path, or to DefaultLogFile when
// path is empty. The terminal is never written to. Only when no cache
// directory exists is the log discarded. The returned func closes the file.
func SetupLogging(path string) (func(), error) {
	if path == "" {
		def, err := DefaultLogFile()
		if err == nil {
			err = os.MkdirAll(filepath.Dir(def), 0755)
		}
		if err != nil {
			log.SetOutput(io.Discard)
			return func() { log.SetOutput(os.Stderr) }, nil
		}
		path = def
	}
	f, err := tea.LogToFile(path, "jobdesk")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
