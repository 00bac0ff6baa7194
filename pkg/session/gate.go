package session

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFetchInterval spaces consecutive profile fetches.
const DefaultFetchInterval = 300 * time.Millisecond

// Limiter paces profile fetches. Wait blocks until the next fetch may start
// or ctx is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewIntervalGate allows one fetch per interval with no burst.
func NewIntervalGate(interval time.Duration) Limiter {
	if interval <= 0 {
		return Unlimited
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

type unlimited struct{}

func (unlimited) Wait(ctx context.Context) error { return ctx.Err() }

// Unlimited never waits. It still reports a cancelled context.
var Unlimited Limiter = unlimited{}
