package ytserver

import (
	"errors"
	"sync/atomic"
)

// ErrBusy rejects a search while another one is running.
var ErrBusy = errors.New("a search is already in progress")

// Guard admits one search at a time. A second caller is rejected, not queued.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire claims the guard, reporting false if it is already held.
func (g *Guard) TryAcquire() bool { return g.busy.CompareAndSwap(false, true) }

// Release frees the guard.
func (g *Guard) Release() { g.busy.Store(false) }

// Busy reports whether a search holds the guard.
func (g *Guard) Busy() bool { return g.busy.Load() }
