package notifier

import (
	"sync"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendTrackerEventCalls []tracker.Event
	SendPolicyAlertCalls  []policy.Alert
	SendMatchEventCalls   []match.Event
	SendScoreUpdateCalls  []match.Score

	// Spies
	SendTrackerEventFunc func(ev tracker.Event, dryRun bool) (string, error)
	SendPolicyAlertFunc  func(alert policy.Alert, dryRun bool) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTrackerEventCalls = nil
	m.SendPolicyAlertCalls = nil
	m.SendMatchEventCalls = nil
	m.SendScoreUpdateCalls = nil
}

func (m *Mock) SendTrackerEvent(ev tracker.Event, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendTrackerEventCalls = append(m.SendTrackerEventCalls, ev)
	fn := m.SendTrackerEventFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ev, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendPolicyAlert(alert policy.Alert, dryRun bool) error {
	m.mu.Lock()
	m.SendPolicyAlertCalls = append(m.SendPolicyAlertCalls, alert)
	fn := m.SendPolicyAlertFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(alert, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchEvent(ev match.Event, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchEventCalls = append(m.SendMatchEventCalls, ev)
	return nil
}

func (m *Mock) SendScoreUpdate(score match.Score, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScoreUpdateCalls = append(m.SendScoreUpdateCalls, score)
	return nil
}
