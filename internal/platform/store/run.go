package store

import "context"

// RunAsActor wraps ctx with the acting identity and calls fn inside the provided TxRunner
func RunAsActor(ctx context.Context, tx TxRunner, actorID int64, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithActor(ctx, actorID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
