package batch_test

import (
	"backoffice/internal/batch"
	"backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuditPruner struct {
	mock.Mock
}

func (m *MockAuditPruner) Prune(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewAuditPruneJobPanics(t *testing.T) {
	assert.Panics(t, func() { batch.NewAuditPruneJob(nil, 90, logger) })
	assert.Panics(t, func() { batch.NewAuditPruneJob(new(MockAuditPruner), 90, nil) })
}

func TestAuditPruneJobRun(t *testing.T) {
	ctx := context.Background()

	t.Run("prunes with the configured retention", func(t *testing.T) {
		pruner := new(MockAuditPruner)
		pruner.On("Prune", ctx, 90).Return(int64(12), nil).Once()

		job := batch.NewAuditPruneJob(pruner, 90, logger)
		err := job.Run(ctx)

		assert.NoError(t, err)
		pruner.AssertExpectations(t)
	})

	t.Run("nothing to prune", func(t *testing.T) {
		pruner := new(MockAuditPruner)
		pruner.On("Prune", ctx, 30).Return(int64(0), nil).Once()

		err := batch.NewAuditPruneJob(pruner, 30, logger).Run(ctx)

		assert.NoError(t, err)
	})

	t.Run("propagates pruner errors", func(t *testing.T) {
		pruner := new(MockAuditPruner)
		dbErr := apperrors.WrapDatabaseError(errors.New("connection refused"), "failed to prune")
		pruner.On("Prune", ctx, 90).Return(int64(0), dbErr).Once()

		err := batch.NewAuditPruneJob(pruner, 90, logger).Run(ctx)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		assert.Contains(t, err.Error(), "cannot prune audit log")
	})

	t.Run("invalid retention is reported", func(t *testing.T) {
		pruner := new(MockAuditPruner)
		pruner.On("Prune", ctx, 0).Return(int64(0), apperrors.ErrInvalidArgument).Once()

		err := batch.NewAuditPruneJob(pruner, 0, logger).Run(ctx)

		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}
