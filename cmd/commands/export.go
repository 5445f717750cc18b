package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/search"
	"github.com/jobdesk/jobdesk-terminal/pkg/view"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		filters filterFlags
		outFile string
		title   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the jobs table as an HTML page",
		Long: `Render the (optionally filtered) jobs table with its stats as a
standalone HTML page. All job text is escaped.

Examples:
  # Write to stdout
  jobdesk export

  # Active jobs to a file
  jobdesk export --status active --out active.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, filters.criteria(), outFile, title)
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&outFile, "out", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "Jobs", "Page title")
	return cmd
}

func runExport(cmd *cobra.Command, criteria search.Criteria, outFile, title string) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cc.LoadJobs(commandContext(cmd)); err != nil {
		return err
	}

	jobs := search.ComputeView(cc.Store.Jobs(), criteria)
	rendering := view.Render(jobs, search.ComputeStats(jobs))

	var w io.Writer = cmd.OutOrStdout()
	if outFile != "" && outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outFile, err)
		}
		defer f.Close()
		w = f
	}

	if err := view.WriteDocument(w, title, rendering); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if outFile != "" && outFile != "-" {
		cli.PrintSuccess("Exported %d jobs to %s", len(rendering.Rows), outFile)
	}
	return nil
}
