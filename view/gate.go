package view

import (
	"context"
	"sync"
)

// Ticket identifies one issued request
type Ticket struct {
	seq uint64
}

// Seq returns the ticket's sequence number
func (t Ticket) Seq() uint64 {
	return t.seq
}

// Gate orders the requests issued for one view. Each Begin supersedes the
// previous request, cancelling its context; Commit applies an update only
// for the most recent ticket. Close rejects every later commit, which is
// how a view that has gone away stops in-flight responses from landing.
type Gate struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// Begin issues a new ticket and the context its request should run under
func (g *Gate) Begin(parent context.Context) (Ticket, context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}

	g.seq++
	ctx, cancel := context.WithCancel(parent)
	if g.closed {
		cancel()
	}
	g.cancel = cancel

	return Ticket{seq: g.seq}, ctx
}

// Commit runs apply if t is still the latest ticket and the gate is open.
// apply runs under the gate lock and must not call back into the gate.
func (g *Gate) Commit(t Ticket, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || t.seq != g.seq {
		return false
	}
	apply()
	return true
}

// IsCurrent reports whether t is the latest ticket of an open gate
func (g *Gate) IsCurrent(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return !g.closed && t.seq == g.seq
}

// Latest returns the sequence number of the most recent ticket
func (g *Gate) Latest() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seq
}

// Closed reports whether Close has been called
func (g *Gate) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.closed
}

// Close cancels the in-flight request and rejects all later commits
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
