// Package clock provides the match clock the tracker and policy evaluation
// read from. The clock is the only component that owns time; everything else
// reacts to discrete readings.
package clock

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Clock gives the current elapsed match time and running state.
type Clock interface {
	ElapsedSeconds() int
	Running() bool
}

// Match is a pausable match clock anchored to wall time while running.
type Match struct {
	mu      sync.Mutex
	base    int
	anchor  time.Time
	running bool
	now     func() time.Time
}

// NewMatch creates a stopped match clock at 0 seconds.
func NewMatch() *Match {
	return &Match{now: time.Now}
}

// NewMatchAt creates a stopped clock with a custom time source, for tests.
func NewMatchAt(now func() time.Time) *Match {
	return &Match{now: now}
}

// Start resumes the clock. No-op if already running.
func (m *Match) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.anchor = m.now()
	m.running = true
	log.Info("match clock started", "elapsed", m.base)
}

// Pause freezes the clock. No-op if already paused.
func (m *Match) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.base += int(m.now().Sub(m.anchor).Seconds())
	m.running = false
	log.Info("match clock paused", "elapsed", m.base)
}

// SetElapsed moves the clock to a specific match second, keeping the running
// state. Used for corrections and for resuming a restored session.
func (m *Match) SetElapsed(seconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	m.base = seconds
	m.anchor = m.now()
}

// Reset stops the clock and returns it to 0.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.base = 0
	m.running = false
}

func (m *Match) ElapsedSeconds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return m.base
	}
	return m.base + int(m.now().Sub(m.anchor).Seconds())
}

func (m *Match) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
