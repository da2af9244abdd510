package client

import (
	"sync"
	"time"
)

// pipelineGate enforces SafePipelineTimeout: once more than one request is
// in flight and SafePipelineTimeout has passed since the last response
// fully arrived, the connection is considered stalled and the writer
// stops accepting new codecs until the window drains back to a single
// in-flight request. Requests already written are unaffected.
type pipelineGate struct {
	mu       sync.Mutex
	cond     *sync.Cond
	inFlight int
	lastResp time.Time
	timeout  time.Duration
}

func newPipelineGate(timeout time.Duration) *pipelineGate {
	g := &pipelineGate{timeout: timeout, lastResp: time.Now()}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// waitForRoom blocks while the pipeline looks stalled, and once it has
// blocked keeps blocking until at most one request is in flight.
func (g *pipelineGate) waitForRoom() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight > 1 && time.Since(g.lastResp) > g.timeout {
		for g.inFlight > 1 {
			g.cond.Wait()
		}
	}
}

// requestSent records that one more request has been written and is
// awaiting its response.
func (g *pipelineGate) requestSent() {
	g.mu.Lock()
	g.inFlight++
	g.mu.Unlock()
}

// responseDone records that one in-flight request's response has been
// fully read, waking any writer blocked in waitForRoom.
func (g *pipelineGate) responseDone() {
	g.mu.Lock()
	g.inFlight--
	g.lastResp = time.Now()
	g.cond.Broadcast()
	g.mu.Unlock()
}
