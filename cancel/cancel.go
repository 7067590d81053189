// Package cancel provides the cooperative stop signal shared by a
// benchmark session and the sort algorithms it runs.
//
// Algorithms poll Done at their checkpoints (before a partition, a
// merge, or a run), so setting the signal never interrupts a step that
// is already under way. Once set, a Token stays set.
package cancel

import (
	"context"
	"sync/atomic"
	"time"
)

// Canceler provides cancellation signaling to sort algorithms and
// benchmark workers.
//
// Implementations must be safe for concurrent use: many goroutines may
// call Done while another calls Cancel.
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Token is a Canceler backed by an atomic.Bool. Each Done call is a
// single atomic load, cheap enough for the inner loops of a sort.
//
// The zero Token is ready to use.
type Token struct {
	done atomic.Bool
}

// NewToken creates a new Token.
func NewToken() *Token {
	return &Token{}
}

// Done returns true if cancellation has been triggered.
func (t *Token) Done() bool {
	return t.done.Load()
}

// Cancel triggers cancellation.
func (t *Token) Cancel() {
	t.done.Store(true)
}

// CancelAfter cancels t once d has elapsed. The returned function
// disarms the timer; it reports false if the timer already fired.
func (t *Token) CancelAfter(d time.Duration) (stop func() bool) {
	timer := time.AfterFunc(d, t.Cancel)
	return timer.Stop
}

// WithContext returns a fresh Token that is cancelled when ctx is done,
// and a function that releases the association with ctx.
func WithContext(ctx context.Context) (*Token, func() bool) {
	t := NewToken()
	stop := context.AfterFunc(ctx, t.Cancel)
	return t, stop
}

// Join returns a Canceler that is done as soon as any of cs is done.
// Cancel on the result cancels every non-nil element of cs.
func Join(cs ...Canceler) Canceler {
	j := make(joined, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			j = append(j, c)
		}
	}
	return j
}

type joined []Canceler

func (j joined) Done() bool {
	for _, c := range j {
		if c.Done() {
			return true
		}
	}
	return false
}

func (j joined) Cancel() {
	for _, c := range j {
		c.Cancel()
	}
}

// Never is a Canceler that is never done. Cancel has no effect.
var Never Canceler = never{}

type never struct{}

func (never) Done() bool { return false }
func (never) Cancel()    {}
