package cli

import (
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/primary/cli/commands"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	ascii "github.com/mimi1vx/osc-plugin-qam/internal/format/ascii"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	var debug bool

	cmd := &cobra.Command{
		Use:  "qam",
		Long: `A CLI tool for working on maintenance update reviews.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.Setup(debug)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	appInstance := do.MustInvoke[*app.App](i)
	formatter := do.MustInvoke[*ascii.Formatter](i)

	cmd.AddCommand(
		commands.Assign(appInstance),
		commands.Unassign(appInstance),
		commands.Approve(appInstance),
		commands.Reject(appInstance),
		commands.Comment(appInstance, formatter),
		commands.Info(appInstance, formatter),
		commands.List(appInstance, formatter),
		commands.Report(appInstance),
	)

	return cmd, nil
}
