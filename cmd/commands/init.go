package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/files"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default jobdesk.yaml",
		Long: `Write a settings file with the defaults filled in. The --api flag,
if given, becomes api.base_url.

Examples:
  jobdesk init
  jobdesk init --api https://jobs.example.com/api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = files.SettingsFile
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	settings := models.DefaultSettings()
	if base, _ := cmd.Flags().GetString("api"); base != "" {
		settings.API.BaseURL = strings.TrimRight(base, "/")
	}
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		settings.Log.File = logFile
	}

	if err := files.WriteSettings(path, settings); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote %s", path)
	cli.PrintInfo("Run 'jobdesk' to start the console.")
	return nil
}
