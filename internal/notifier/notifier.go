package notifier

import (
	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Tracker actions: adds, removals, toggles, substitutions, undo.
	SendTrackerEvent(ev tracker.Event, dryRun bool) (string, error)
	// Role-policy alerts from the watcher.
	SendPolicyAlert(alert policy.Alert, dryRun bool) error
	// Match record events: goals, cards, markers.
	SendMatchEvent(ev match.Event, dryRun bool) error
	// Scoreboard updates.
	SendScoreUpdate(score match.Score, dryRun bool) error
}

// Sink adapts a Notifier to the tracker's fire-and-forget event sink. Sink
// failures are logged and swallowed; the tracker state stays authoritative.
type Sink struct {
	notifier Notifier
}

// NewSink creates a tracker.EventSink backed by a Notifier.
func NewSink(n Notifier) *Sink {
	return &Sink{notifier: n}
}

var _ tracker.EventSink = (*Sink)(nil)

func (s *Sink) Publish(ev tracker.Event) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.SendTrackerEvent(ev, false); err != nil {
		log.Error("failed to deliver tracker event", "error", err, "kind", ev.Kind)
	}
}
