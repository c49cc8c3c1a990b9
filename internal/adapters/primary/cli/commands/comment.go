package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	ascii "github.com/mimi1vx/osc-plugin-qam/internal/format/ascii"
	"github.com/mimi1vx/osc-plugin-qam/internal/log"
	"github.com/spf13/cobra"
)

func Comment(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comments on a request",
	}

	cmd.AddCommand(
		commentAdd(appInstance),
		commentList(appInstance, formatter),
		commentRemove(appInstance),
	)

	return cmd
}

func commentAdd(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "add REQUEST TEXT...",
		Short: "Attach a comment to a request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")

			return log.WithSpinner("Adding comment...", func() error {
				return appInstance.Comment(context.Background(), args[0], text)
			})
		},
	}
}

func commentList(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "list REQUEST",
		Short: "Show the comments on a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var comments []domain.Comment
			err := log.WithSpinner("Fetching comments...", func() error {
				var err error
				comments, err = appInstance.Comments(context.Background(), args[0])

				return err
			})
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatComments(comments)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(formatted)

			return nil
		},
	}
}

func commentRemove(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm COMMENT_ID",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return log.WithSpinner("Deleting comment...", func() error {
				return appInstance.DeleteComment(context.Background(), args[0])
			})
		},
	}
}
