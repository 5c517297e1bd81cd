package repositories

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trailmark/trailmark-backend/models"
)

type ExecutorGetter struct {
	connectionPool *pgxpool.Pool
}

func NewExecutorGetter(pool *pgxpool.Pool) ExecutorGetter {
	return ExecutorGetter{
		connectionPool: pool,
	}
}

func (g ExecutorGetter) Transaction(
	ctx context.Context,
	fn func(tx Transaction) error,
) error {
	// Concurrent writers can deadlock or fail serialization; those errors are
	// safe to retry because the whole callback reruns in a fresh transaction.
	err := retry.Do(
		func() error {
			return pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
				return fn(PgTx{tx: tx})
			})
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return IsDeadlockError(err) || IsSerializationFailureError(err)
		}),
	)

	// helper: The callback can return ErrIgnoreRollBackError
	// to explicitly specify that the error should be ignored.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "Error executing transaction")
}

func (g ExecutorGetter) GetExecutor() Executor {
	return PgExecutor{exec: g.connectionPool}
}

func validateExecutor(exec Executor) error {
	if exec == nil {
		return errors.New("cannot use nil executor")
	}
	return nil
}
