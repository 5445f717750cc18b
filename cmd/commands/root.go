package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
	"github.com/jobdesk/jobdesk-terminal/pkg/tui"
)

// NewRootCommand builds the jobdesk command tree. Without a subcommand it
// starts the interactive console.
func NewRootCommand(version string) *cobra.Command {
	cli.UserAgent = "jobdesk/" + version

	rootCmd := &cobra.Command{
		Use:   "jobdesk",
		Short: "Terminal console for managing job postings",
		Long: `jobdesk is a terminal console for a jobs REST API. It lists, filters,
creates, edits and deletes job postings, either interactively or through
scriptable subcommands.

The API location comes from --api, JOBDESK_API_BASE, or api.base_url in
jobdesk.yaml (default http://localhost/api).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			noColor, _ := cmd.Flags().GetBool("no-color")
			yes, _ := cmd.Flags().GetBool("yes")
			cli.SetGlobalFlags(quiet, noColor, yes)
			cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
		RunE: runConsole,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api", "", "Base URL of the jobs API")
	flags.String("config", "", "Settings file (default ./jobdesk.yaml)")
	flags.String("log-file", "", "Write diagnostics to this file")
	flags.StringP("output", "o", "text", "Output format: text, json, or yaml")
	flags.BoolP("quiet", "q", false, "Suppress informational output")
	flags.Bool("no-color", false, "Disable symbols and color in messages")
	flags.BoolP("yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(
		NewListCommand(),
		NewShowCommand(),
		NewCreateCommand(),
		NewUpdateCommand(),
		NewDeleteCommand(),
		NewExportCommand(),
		NewInitCommand(),
		newVersionCommand(version),
	)

	return rootCmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of jobdesk",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jobdesk version %s\n", version)
		},
	}
}

// setup resolves settings for a subcommand and points the log at the
// configured file. The returned func must be called when the command ends.
func setup(cmd *cobra.Command) (*cli.CommandContext, func(), error) {
	cc, err := cli.NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	done, err := cli.SetupLogging(cc.Settings.Log.File)
	if err != nil {
		return nil, nil, err
	}
	return cc, done, nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cc.Settings.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(tui.NewApp(ctx, cc.Store, cc.Settings), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

// commandContext returns the command's context, never nil
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// describeError turns store errors into operator-facing messages
func describeError(err error) error {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("Title and Status are required. (missing: %s)", strings.Join(ve.Fields, ", "))
	}
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Errorf("Job not found: %s", nf.ID)
	}
	return err
}
