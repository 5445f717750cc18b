package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdesk/jobdesk-terminal/internal/cli"
	"github.com/jobdesk/jobdesk-terminal/pkg/form"
	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// fieldFlags maps command flags onto form fields. Only flags the user set
// are applied, so an edit keeps every value it was not told to change.
type fieldFlags struct {
	values map[string]*string
}

func newFieldFlags(cmd *cobra.Command) *fieldFlags {
	f := &fieldFlags{values: make(map[string]*string)}
	usage := map[string]string{
		form.FieldTitle:        "Job title (required)",
		form.FieldType:         "Job type, e.g. Full-time",
		form.FieldStatus:       "Job status, e.g. active or pending (required)",
		form.FieldApplications: "Number of applications",
		form.FieldDuration:     "Duration, e.g. '6 months'",
		form.FieldDescription:  "Job description",
	}
	for _, name := range form.FieldNames {
		f.values[name] = cmd.Flags().String(name, "", usage[name])
	}
	return f
}

// apply copies the flags the user set into the open form
func (f *fieldFlags) apply(cmd *cobra.Command, ctrl *form.Controller) error {
	for _, name := range form.FieldNames {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value := *f.values[name]
		if name == form.FieldApplications {
			if err := cli.ValidateApplications(value); err != nil {
				return err
			}
		}
		if err := ctrl.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job",
		Long: `Create a job. Title and status are required.

Examples:
  jobdesk create --title "Night Baker" --status active
  jobdesk create --title Driver --type Contract --status pending --applications 3 --duration "6 months"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, fields)
		},
	}

	fields = newFieldFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, fields *fieldFlags) error {
	cc, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctrl := form.NewController()
	ctrl.OpenCreate()
	if err := fields.apply(cmd, ctrl); err != nil {
		return err
	}

	job, err := ctrl.Submit(commandContext(cmd), cc.Store)
	if err != nil {
		return describeError(err)
	}

	return outputSavedJob(cmd, job, "Created")
}

func outputSavedJob(cmd *cobra.Command, job models.Job, verb string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, job)
	}
	cli.PrintSuccess("%s job %s: %s", verb, job.ID, format.Terminal(job.Title))
	if verb == "Created" {
		// ids are server-assigned; print them even in quiet mode for scripts
		if isQuiet(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), job.ID)
		}
	}
	return nil
}

func isQuiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
