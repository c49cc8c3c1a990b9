package app

import (
	"context"
	"errors"
	"testing"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/repository/mocks"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnwindAppliesCompensationsInReverseOrder(t *testing.T) {
	repo := &mocks.MockRepository{}
	var order []string
	repo.On("ReopenUserReview", mock.Anything, "52542",
		&domain.User{Login: "anonymous"}, "undo user").
		Run(func(_ mock.Arguments) { order = append(order, "user") }).Return(nil)
	repo.On("AcceptGroupReview", mock.Anything, "52542",
		domain.Group{Name: "qam-sle"}, "undo group").
		Run(func(_ mock.Arguments) { order = append(order, "group") }).Return(nil)

	undo := &undoStack{}
	undo.push(compensation{
		kind:    compensateAcceptGroup,
		reqID:   "52542",
		group:   domain.Group{Name: "qam-sle"},
		comment: "undo group",
	})
	undo.push(compensation{
		kind:    compensateReopenUser,
		reqID:   "52542",
		user:    &domain.User{Login: "anonymous"},
		comment: "undo user",
	})

	cause := errors.New("boom")
	err := undo.unwind(context.Background(), repo, cause)

	require.ErrorIs(t, err, cause)
	// Pushed group first, user second: unwound user first.
	assert.Equal(t, []string{"user", "group"}, order)
}

func TestUnwindReportsRollbackFailures(t *testing.T) {
	repo := &mocks.MockRepository{}
	rollbackErr := errors.New("rollback broken")
	repo.On("AcceptGroupReview", mock.Anything, "52542",
		domain.Group{Name: "qam-sle"}, "undo group").Return(rollbackErr)

	undo := &undoStack{}
	undo.push(compensation{
		kind:    compensateAcceptGroup,
		reqID:   "52542",
		group:   domain.Group{Name: "qam-sle"},
		comment: "undo group",
	})

	cause := errors.New("boom")
	err := undo.unwind(context.Background(), repo, cause)

	require.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, rollbackErr)
}
