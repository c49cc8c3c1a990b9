package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	"github.com/spf13/cobra"
)

func Assign(appInstance *app.App) *cobra.Command {
	var groupName string

	cmd := &cobra.Command{
		Use:   "assign REQUEST",
		Short: "Assign yourself as reviewer for a request",
		Long: `Assign yourself as reviewer for a request on behalf of one of your groups.
Without --group the target group is inferred from the open reviews; if more
than one of your groups could review, the command asks you to pick one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var group domain.Group
			err := log.WithSpinner("Assigning review...", func() error {
				var err error
				group, err = appInstance.Assign(context.Background(), args[0], groupName)

				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf("Assigned for group %s on request %s\n", group.Name, args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&groupName, "group", "G", "", "Group to assign for (skips inference)")

	return cmd
}

func Unassign(appInstance *app.App) *cobra.Command {
	var groupNames []string

	cmd := &cobra.Command{
		Use:   "unassign REQUEST",
		Short: "Withdraw your review assignment on a request",
		Long: `Withdraw your review assignment on a request and reopen the group review.
Without --group the assigned group is inferred; if you are assigned for
several groups, name the ones to drop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var groups []domain.Group
			err := log.WithSpinner("Unassigning review...", func() error {
				var err error
				groups, err = appInstance.Unassign(context.Background(), args[0], groupNames)

				return err
			})
			if err != nil {
				return err
			}

			names := make([]string, 0, len(groups))
			for _, group := range groups {
				names = append(names, group.Name)
			}
			fmt.Printf("Unassigned from %s on request %s\n", strings.Join(names, ", "), args[0])

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groupNames, "group", "G", nil, "Group(s) to unassign from")

	return cmd
}
