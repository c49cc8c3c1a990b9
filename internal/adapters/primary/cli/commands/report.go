package commands

import (
	"context"
	"fmt"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

func Report(appInstance *app.App) *cobra.Command {
	var showLog bool

	cmd := &cobra.Command{
		Use:   "report REQUEST",
		Short: "Open the test report of a request in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var template *report.Template
			err := log.WithSpinner("Locating test report...", func() error {
				var err error
				template, err = appInstance.TestReport(context.Background(), args[0])

				return err
			})
			if err != nil {
				return err
			}

			url := template.ReportURL
			if showLog {
				url = template.LogURL
			}

			if err := open.Run(url); err != nil {
				return fmt.Errorf("failed to open %s: %w", url, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showLog, "log", false, "Open the raw log instead of the report directory")

	return cmd
}
