package repository

import "context"

// TxManager runs a function inside one storage transaction. The
// shipment-row write and the history append for a single lifecycle
// operation must commit together or not at all; partial application
// (history updated but shipment row stale, or vice versa) is the
// primary failure mode this guards against.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
