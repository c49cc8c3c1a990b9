package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

type compensationKind int

const (
	compensateAcceptGroup compensationKind = iota
	compensateReopenUser
)

// compensation is one remote step that reverts a previously applied
// mutation of the same action invocation. It is a plain value, not a
// closure, so the unwind path has no hidden state.
type compensation struct {
	kind    compensationKind
	reqID   string
	group   domain.Group
	user    *domain.User
	comment string
}

func (c compensation) apply(ctx context.Context, repo Repository) error {
	switch c.kind {
	case compensateAcceptGroup:
		return repo.AcceptGroupReview(ctx, c.reqID, c.group, c.comment)
	case compensateReopenUser:
		return repo.ReopenUserReview(ctx, c.reqID, c.user, c.comment)
	default:
		return fmt.Errorf("unknown compensation kind %d", c.kind)
	}
}

// undoStack collects compensations for the remote mutations an action
// has already performed. It belongs to exactly one in-flight
// invocation.
type undoStack struct {
	steps []compensation
}

func (s *undoStack) push(step compensation) {
	s.steps = append(s.steps, step)
}

// unwind executes the compensations in reverse order. Compensations
// are best effort: failures are reported alongside the original error,
// never retried and never swallowed.
func (s *undoStack) unwind(ctx context.Context, repo Repository, cause error) error {
	errs := []error{cause}
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		slog.Warn("rolling back remote mutation", "request", step.reqID)
		if err := step.apply(ctx, repo); err != nil {
			errs = append(errs, fmt.Errorf("rollback failed: %w", err))
		}
	}

	return errors.Join(errs...)
}
