package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job",
		Long: `Permanently delete a job. You are asked to confirm unless --yes
is given.

Examples:
  # Delete with confirmation
  jobdesk delete 42

  # Delete without asking
  jobdesk delete 42 --yes`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateJobID(args[0])
		},
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx := commandContext(cmd)
	if err := cc.LoadJobs(ctx); err != nil {
		return err
	}

	job, ok := cc.Store.Find(id)
	if !ok {
		return describeError(&store.NotFoundError{ID: id})
	}

	prompt := fmt.Sprintf("Delete job '%s' (%s)? This cannot be undone.", format.Terminal(job.Title), id)
	confirmed, err := cli.ConfirmWith(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Deletion cancelled")
		return nil
	}

	if err := cc.Store.Delete(ctx, id, confirmed); err != nil {
		return err
	}

	cli.PrintSuccess("Deleted job %s: %s", id, format.Terminal(job.Title))
	return nil
}
