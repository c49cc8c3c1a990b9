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

func Approve(appInstance *app.App) *cobra.Command {
	var groupName string

	cmd := &cobra.Command{
		Use:   "approve REQUEST",
		Short: "Approve your review on a request",
		Long: `Approve your review on a request. With --group the review of that group is
approved instead; the group must be a reviewer on the request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			err := log.WithSpinner("Approving review...", func() error {
				if groupName != "" {
					return appInstance.ApproveGroup(context.Background(), args[0], groupName)
				}

				return appInstance.Approve(context.Background(), args[0])
			})
			if err != nil {
				return err
			}

			fmt.Printf("Approved request %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&groupName, "group", "G", "", "Approve the review of this group instead")

	return cmd
}

func Reject(appInstance *app.App) *cobra.Command {
	var (
		message     string
		reasonFlags []string
	)

	cmd := &cobra.Command{
		Use:   "reject REQUEST",
		Short: "Reject your review on a request",
		Long: `Reject your review on a request. The test report must record a FAILED run,
and either the report or --message must supply the comment. At least one
--reason classifying the rejection is required; it is recorded on the
incident. Reasons: ` + strings.Join(domain.RejectReasonValues(), ", ") + `.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reasons := make([]domain.RejectReason, 0, len(reasonFlags))
			for _, flag := range reasonFlags {
				reason, err := domain.ParseRejectReason(flag)
				if err != nil {
					return err
				}
				reasons = append(reasons, reason)
			}

			err := log.WithSpinner("Rejecting review...", func() error {
				return appInstance.Reject(context.Background(), args[0], message, reasons)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Rejected request %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "M", "", "Comment for the rejection")
	cmd.Flags().StringSliceVarP(&reasonFlags, "reason", "R", nil, "Why the request is rejected (repeatable)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
