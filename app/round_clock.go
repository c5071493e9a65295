package app

import (
	"sync"
	"time"
)

// RoundClock tracks the duration of the current round and the accumulated
// time spent in rounds. The zero value is ready to use.
type RoundClock struct {
	mu                sync.Mutex
	active            bool
	roundStart        time.Time
	lastRoundDuration time.Duration
	accumulated       time.Duration
}

// NewRoundClock returns a pointer to a ready-to-use RoundClock.
func NewRoundClock() *RoundClock { return &RoundClock{} }

// OnTick updates the clock with the engine's round state at now.
func (c *RoundClock) OnTick(inRound bool, now time.Time) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if inRound {
		if !c.active {
			c.active = true
			c.roundStart = now
			c.lastRoundDuration = 0
		}
		c.lastRoundDuration = now.Sub(c.roundStart)
	} else if c.active {
		c.lastRoundDuration = now.Sub(c.roundStart)
		c.accumulated += c.lastRoundDuration
		c.active = false
	}
}

// Values returns the current (or last) round duration and the total time in
// rounds, including the ongoing one.
func (c *RoundClock) Values() (round, total time.Duration) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	round = c.lastRoundDuration
	total = c.accumulated
	if c.active {
		total += round
	}
	return
}
