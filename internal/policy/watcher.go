package policy

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/metrics"
)

// Notifier defines the notification operations required by the policy
// watcher. This keeps the policy package decoupled from the main notifier
// interface.
type Notifier interface {
	SendPolicyAlert(alert Alert, dryRun bool) error
}

// Source produces the current alert set. Typically wraps Evaluate over a
// tracker snapshot.
type Source func() []Alert

// Watcher polls the alert source and pushes newly-appearing alerts to the
// notifier. Alerts are projections, so the watcher dedupes on
// (player, kind): a notification goes out when a pair first appears, not on
// every tick.
type Watcher struct {
	source   Source
	notifier Notifier
	metrics  metrics.Metrics
	seen     map[alertKey]bool
}

type alertKey struct {
	playerID int
	kind     AlertKind
}

// NewWatcher creates a Watcher.
func NewWatcher(source Source, notifier Notifier, m metrics.Metrics) *Watcher {
	return &Watcher{
		source:   source,
		notifier: notifier,
		metrics:  m,
		seen:     make(map[alertKey]bool),
	}
}

// Check evaluates the source once and notifies on new alerts. Pairs that
// disappear from the alert set are forgotten, so an alert that re-engages
// later notifies again.
func (w *Watcher) Check() {
	alerts := w.source()

	current := make(map[alertKey]bool, len(alerts))
	for _, a := range alerts {
		key := alertKey{playerID: a.PlayerID, kind: a.Kind}
		current[key] = true
		if w.seen[key] {
			continue
		}
		w.seen[key] = true
		w.metrics.IncPolicyAlerts()
		if w.notifier == nil {
			continue
		}
		if err := w.notifier.SendPolicyAlert(a, false); err != nil {
			// Sink failure never affects tracker or watcher state.
			log.Error("failed to send policy alert", "error", err, "kind", a.Kind, "player", a.PlayerName)
		}
	}

	for key := range w.seen {
		if !current[key] {
			delete(w.seen, key)
		}
	}
}

// Run polls on the given interval until the context is cancelled.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info("policy watcher started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("policy watcher stopped")
			return
		case <-ticker.C:
			w.Check()
		}
	}
}
