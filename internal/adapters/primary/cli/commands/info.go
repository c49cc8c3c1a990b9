package commands

import (
	"context"
	"fmt"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	ascii "github.com/mimi1vx/osc-plugin-qam/internal/format/ascii"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	"github.com/spf13/cobra"
)

func Info(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "info REQUEST",
		Short: "Show the full review state of a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var report *app.Report
			err := log.WithSpinner("Fetching request...", func() error {
				var err error
				report, err = appInstance.Info(context.Background(), args[0])

				return err
			})
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatReports([]*app.Report{report}, true)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(formatted)

			return nil
		},
	}
}
