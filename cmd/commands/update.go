package commands

import (
	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/form"
)

// NewUpdateCommand creates the update command
func NewUpdateCommand() *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a job",
		Long: `Change fields of an existing job. Fields without a flag keep their
current values; all six editable fields are sent to the server.

Examples:
  jobdesk update 42 --status active
  jobdesk update 42 --title "Senior Baker" --applications 0`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateJobID(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], fields)
		},
	}

	fields = newFieldFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, id string, fields *fieldFlags) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx := commandContext(cmd)
	if err := cc.LoadJobs(ctx); err != nil {
		return err
	}

	ctrl := form.NewController()
	if err := ctrl.OpenEdit(cc.Store, id); err != nil {
		return describeError(err)
	}
	if err := fields.apply(cmd, ctrl); err != nil {
		return err
	}

	job, err := ctrl.Submit(ctx, cc.Store)
	if err != nil {
		return describeError(err)
	}

	return outputSavedJob(cmd, job, "Updated")
}
