package commands

import (
	"context"
	"fmt"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	ascii "github.com/mimi1vx/osc-plugin-qam/internal/format/ascii"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	"github.com/spf13/cobra"
)

// listFlags are shared by every listing subcommand.
type listFlags struct {
	verbose bool
	tabular bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Show review roles and report metadata")
	cmd.Flags().BoolVarP(&f.tabular, "tabular", "T", false, "One aligned row per request")
}

func (f *listFlags) validate() error {
	if f.verbose && f.tabular {
		return &domain.ConflictingOptionsError{Options: []string{"--verbose", "--tabular"}}
	}

	return nil
}

func List(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests",
	}

	cmd.AddCommand(
		listOpen(appInstance, formatter),
		listAssigned(appInstance, formatter),
		listMine(appInstance, formatter),
	)

	return cmd
}

func listOpen(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var (
		flags  listFlags
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Show open requests reviewable by you or your groups",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showReports(&flags, formatter, "Fetching open requests...", func(ctx context.Context) ([]*app.Report, error) {
				if len(groups) > 0 {
					return appInstance.ListOpenForGroups(ctx, groups)
				}

				return appInstance.ListOpen(ctx)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVarP(&groups, "group", "G", nil, "List for these groups instead of your own")

	return cmd
}

func listAssigned(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var (
		flags  listFlags
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "assigned",
		Short: "Show requests assigned to anybody in a qam group",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showReports(&flags, formatter, "Fetching assigned requests...", func(ctx context.Context) ([]*app.Report, error) {
				if len(groups) > 0 {
					return appInstance.ListAssignedForGroups(ctx, groups)
				}

				return appInstance.ListAssigned(ctx)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVarP(&groups, "group", "G", nil, "List for these groups only")

	return cmd
}

func listMine(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Show requests assigned to you",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showReports(&flags, formatter, "Fetching your requests...", func(ctx context.Context) ([]*app.Report, error) {
				return appInstance.ListAssignedUser(ctx)
			})
		},
	}
	flags.register(cmd)

	return cmd
}

func showReports(
	flags *listFlags,
	formatter *ascii.Formatter,
	message string,
	list func(ctx context.Context) ([]*app.Report, error),
) error {
	if err := flags.validate(); err != nil {
		return err
	}

	var reports []*app.Report
	err := log.WithSpinner(message, func() error {
		var err error
		reports, err = list(context.Background())

		return err
	})
	if err != nil {
		return err
	}

	var formatted string
	if flags.tabular {
		formatted, err = formatter.FormatReportsTabular(reports)
	} else {
		formatted, err = formatter.FormatReports(reports, flags.verbose)
	}
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Print(formatted)

	return nil
}
