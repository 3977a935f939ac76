package billing

import (
	"context"
	"fmt"
	"time"

	"encore.dev/rlog"
)

const asyncTimeout = 10 * time.Second

// runAsync is swapped out in tests to observe or run background work inline.
var runAsync = safeAsync

// safeAsync runs fn in a goroutine detached from the request context, so
// publishing outlives the API call that triggered it. Failures and panics
// are logged with the operation name.
func safeAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				rlog.Error("async operation panicked", "op", op, "panic", fmt.Sprint(r))
			}
		}()

		if err := fn(ctx); err != nil {
			rlog.Error("async operation failed", "op", op, "error", err)
			return
		}
		rlog.Debug("async operation succeeded", "op", op)
	}()
}
