package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/search"
	"github.com/jobdesk/jobdesk-terminal/pkg/view"
)

// ListResult represents the output structure for the list command
type ListResult struct {
	Criteria search.Criteria `json:"criteria" yaml:"criteria"`
	Stats    search.Stats    `json:"stats" yaml:"stats"`
	Count    int             `json:"count" yaml:"count"`
	Jobs     []models.Job    `json:"jobs" yaml:"jobs"`
}

// filterFlags are shared by list and export
type filterFlags struct {
	query  string
	text   string
	typ    string
	status string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.query, "query", "", `Filter query, e.g. 'type:Contract status:active driver'`)
	cmd.Flags().StringVar(&f.text, "search", "", "Only jobs whose title contains this text")
	cmd.Flags().StringVar(&f.typ, "type", "", "Only jobs of this type")
	cmd.Flags().StringVar(&f.status, "status", "", "Only jobs with this status")
}

// criteria merges the query with the individual flags; flags win
func (f *filterFlags) criteria() search.Criteria {
	c := search.ParseQuery(f.query)
	if f.text != "" {
		c.Text = strings.TrimSpace(strings.Join([]string{c.Text, f.text}, " "))
	}
	if f.typ != "" {
		c.Type = f.typ
	}
	if f.status != "" {
		c.Status = f.status
	}
	return c
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long: `List the jobs held by the API, optionally filtered.

Filters combine: a job is shown only if it matches all of them. Title
search is case-insensitive; type and status must match exactly.

Examples:
  # List every job
  jobdesk list

  # Active contract jobs with "driver" in the title
  jobdesk list --type Contract --status active --search driver

  # The same as a single query
  jobdesk list --query 'type:Contract status:active driver'

  # Output as JSON
  jobdesk list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, filters.criteria())
		},
	}

	filters.register(cmd)
	return cmd
}

func runList(cmd *cobra.Command, criteria search.Criteria) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cc.LoadJobs(commandContext(cmd)); err != nil {
		return err
	}

	jobs := search.ComputeView(cc.Store.Jobs(), criteria)
	result := ListResult{
		Criteria: criteria,
		Stats:    search.ComputeStats(jobs),
		Count:    len(jobs),
		Jobs:     jobs,
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputListText(cmd, result)
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	out := cmd.OutOrStdout()
	rendering := view.Render(result.Jobs, result.Stats)

	if rendering.Empty() {
		cli.PrintInfo(rendering.Placeholder)
		return nil
	}

	table := cli.NewTableFormatter(out, cli.JobColumns...)
	for _, row := range rendering.Rows {
		table.Row(
			fmt.Sprintf("%d", row.Index),
			row.ID,
			row.Title,
			format.Fallback(row.Type, "-"),
			row.Status,
			fmt.Sprintf("%d", row.Applications),
			format.Fallback(row.Duration, "-"),
			format.Fallback(row.Preview, "-"),
		)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %d  Active: %d  Pending: %d\n",
		result.Stats.Total, result.Stats.Active, result.Stats.Pending)
	return nil
}
