package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a single job",
		Long: `Display every field of one job, including fields the server
stores that the console does not edit.

Examples:
  jobdesk show 42
  jobdesk show 42 -o yaml`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateJobID(args[0])
		},
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cc.LoadJobs(commandContext(cmd)); err != nil {
		return err
	}

	job, ok := cc.Store.Find(args[0])
	if !ok {
		return describeError(&store.NotFoundError{ID: args[0]})
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, job)
	default:
		return outputJobText(cmd, job)
	}
}

func outputJobText(cmd *cobra.Command, job models.Job) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "ID:           %s\n", job.ID)
	fmt.Fprintf(out, "Title:        %s\n", format.Terminal(job.Title))
	fmt.Fprintf(out, "Type:         %s\n", format.Fallback(format.Terminal(job.Type), "-"))
	fmt.Fprintf(out, "Status:       %s\n", format.Terminal(job.Status))
	fmt.Fprintf(out, "Applications: %d\n", job.Applications)
	fmt.Fprintf(out, "Duration:     %s\n", format.Fallback(format.Terminal(job.Duration), "-"))

	if len(job.Extra) > 0 {
		keys := make([]string, 0, len(job.Extra))
		for k := range job.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "\nOther fields:")
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %s\n", format.Terminal(k), format.Terminal(string(job.Extra[k])))
		}
	}

	if desc := strings.TrimSpace(job.Description); desc != "" {
		fmt.Fprintln(out, "\nDescription:")
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(out, "  %s\n", format.Terminal(line))
		}
	}
	return nil
}
