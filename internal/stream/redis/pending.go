package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	claimBatchSize = 10
	claimCursorEnd = "0-0"
)

// claimPage claims one page of idle pending entries starting at cursor and
// returns them with the next cursor.
type claimPage func(ctx context.Context, cursor string) ([]redis.XMessage, string, error)

// drainPending walks the pending entries list page by page until the cursor
// wraps back to 0-0, handing every claimed message to handle.
func drainPending(ctx context.Context, claim claimPage, handle func(redis.XMessage)) (int, error) {
	cursor := claimCursorEnd
	claimed := 0

	for {
		if err := ctx.Err(); err != nil {
			return claimed, err
		}

		msgs, next, err := claim(ctx, cursor)
		if err != nil {
			return claimed, err
		}

		for _, msg := range msgs {
			handle(msg)
			claimed++
		}

		if next == "" || next == claimCursorEnd {
			return claimed, nil
		}
		cursor = next
	}
}
