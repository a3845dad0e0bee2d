package store

import (
	"context"
	"time"

	perr "caseline/internal/platform/errors"
)

// RunTx runs fn in a transaction and retries the whole transaction while the
// failure is transient contention (serialization, deadlock, busy database)
func RunTx(ctx context.Context, tx TxRunner, attempts int, fn func(q RowQuerier) error) error {
	if attempts < 1 {
		attempts = 1
	}
	bo := backoff{cur: 20 * time.Millisecond, ceiling: 500 * time.Millisecond}
	var err error
	for i := 0; i < attempts; i++ {
		err = tx.Tx(ctx, fn)
		if err == nil || !perr.Retryable(err) {
			return err
		}
		if serr := sleep(ctx, bo.next()); serr != nil {
			return serr
		}
	}
	return err
}
