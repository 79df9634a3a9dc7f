package database

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// Coalescer merges identical toggles that are in flight at the same time, so
// a burst of duplicate requests flips the relation once and every caller
// sees the same outcome.
type Coalescer struct {
	g singleflight.Group
}

// abortedFlight marks a shared call that failed because the context it ran
// under ended, not because of the toggle itself.
type abortedFlight struct {
	err error
}

func (a *abortedFlight) Error() string { return a.err.Error() }
func (a *abortedFlight) Unwrap() error { return a.err }

// Do runs fn under key unless an identical call is already running, in which
// case it waits for that call's result. The shared call runs with the
// context of whichever caller started it; if that caller goes away, callers
// whose own context is still live start a fresh call.
func (c *Coalescer) Do(ctx context.Context, key string, fn func(ctx context.Context) (bool, error)) (bool, error) {
	for {
		ch := c.g.DoChan(key, func() (interface{}, error) {
			v, err := fn(ctx)
			if err != nil && ctx.Err() != nil {
				return v, &abortedFlight{err: err}
			}
			return v, err
		})

		var res singleflight.Result
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case res = <-ch:
		}

		var aborted *abortedFlight
		if errors.As(res.Err, &aborted) {
			if ctx.Err() == nil {
				continue
			}
			return false, aborted.err
		}
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}
